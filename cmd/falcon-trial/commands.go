package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pornin/go-falcon/falconapi"
	"github.com/pornin/go-falcon/internal/ringcheck"
	"github.com/spf13/cobra"
)

const (
	flagTrials        = "trials"
	flagMaxMessage    = "max-message"
	flagSeed          = "seed"
	flagExtract       = "extract"
	flagCheckRelation = "check-relation"
	flagParam         = "param"
	flagKey           = "key"
	flagPub           = "pub"
	flagSig           = "sig"
	flagMessage       = "message"
	flagMessageHex    = "message-hex"
)

func newRunCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run sign/verify/tamper trials with random messages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			seed := a.v.GetInt64(flagSeed)
			if !a.v.IsSet(flagSeed) {
				seed = time.Now().UnixNano()
			}
			cfg := trialConfig{
				Trials:        a.v.GetInt(flagTrials),
				MaxMessage:    a.v.GetInt(flagMaxMessage),
				Seed:          seed,
				Extract:       a.v.GetBool(flagExtract),
				CheckRelation: a.v.GetBool(flagCheckRelation),
			}
			_, err := runTrials(a.engine, cfg, a.log, cmd.OutOrStdout())
			return err
		},
	}
	f := cmd.Flags()
	f.Int(flagTrials, 10, "Number of trials")
	f.Int(flagMaxMessage, 1009, "Maximum message length in bytes")
	f.Int64(flagSeed, 0, "Seed for message generation (default: current time)")
	f.Bool(flagExtract, false, "Also decode s1, s2 and the public key of each signature")
	f.Bool(flagCheckRelation, false, "Recompute s1 + s2*h = c with an independent NTT")
	return cmd
}

func newKeygenCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate a key pair and print it in hex",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			p := falconapi.SecurityParameter(a.v.GetUint(flagParam))
			kp, err := a.engine.GenerateKeyPair(p)
			if err != nil {
				return err
			}
			defer kp.Wipe()
			fmt.Fprintf(out, "param:   %v\n", kp.LogN)
			fmt.Fprintf(out, "public:  %s\n", hex.EncodeToString(kp.PublicKey))
			fmt.Fprintf(out, "private: %s\n", hex.EncodeToString(kp.PrivateKey))
			return nil
		},
	}
	cmd.Flags().Uint(flagParam, uint(falconapi.Falcon512), "Degree as log2 (2 to 10; signing requires 9)")
	return cmd
}

func newSignCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Sign a message with a Falcon-512 private key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			priv, err := hexInput(a.v.GetString(flagKey), flagKey)
			if err != nil {
				return err
			}
			defer clear(priv)
			msg, err := messageInput(a)
			if err != nil {
				return err
			}
			sig, err := a.engine.Sign(msg, priv)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, hex.EncodeToString(sig))
			return nil
		},
	}
	cmd.Flags().String(flagKey, "", "Private key in hex, or @file")
	addMessageFlags(cmd)
	return cmd
}

func newVerifyCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify a Falcon-512 signature",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			pub, err := hexInput(a.v.GetString(flagPub), flagPub)
			if err != nil {
				return err
			}
			sig, err := hexInput(a.v.GetString(flagSig), flagSig)
			if err != nil {
				return err
			}
			msg, err := messageInput(a)
			if err != nil {
				return err
			}
			ok, err := a.engine.Verify(msg, sig, pub)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(out, "invalid")
				return errors.New("signature verification failed")
			}
			fmt.Fprintln(out, "valid")
			return nil
		},
	}
	cmd.Flags().String(flagPub, "", "Public key in hex, or @file")
	cmd.Flags().String(flagSig, "", "Signature in hex, or @file")
	addMessageFlags(cmd)
	return cmd
}

func newInspectCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Decode the vectors of a Falcon-512 signature",
		Long: "Without --pub, only s2 is decoded. With --pub, the signature is verified\n" +
			"and s1, s2, the public key and the relation s1 + s2*h = c are reported.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			sig, err := hexInput(a.v.GetString(flagSig), flagSig)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "signature: %d bytes\n", len(sig))
			if a.v.GetString(flagPub) == "" {
				s2, err := a.engine.DecodeShortVectorS2(sig)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "s2: %s\n", preview(s2))
				fmt.Fprintf(out, "|s2|^2: %d\n", sqnorm(s2))
				return nil
			}

			pub, err := hexInput(a.v.GetString(flagPub), flagPub)
			if err != nil {
				return err
			}
			msg, err := messageInput(a)
			if err != nil {
				return err
			}
			d, err := a.engine.DecodeSignatureAndKeyAlloc(sig, pub, msg)
			if err != nil {
				return err
			}
			c, err := a.engine.MessageHashPolynomial(nil, msg)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "s1: %s\n", preview(d.S1))
			fmt.Fprintf(out, "s2: %s\n", preview(d.S2))
			fmt.Fprintf(out, "h:  %s\n", preview(d.PublicKey))
			fmt.Fprintf(out, "c:  %s\n", preview(c))
			fmt.Fprintf(out, "|s1|^2 + |s2|^2: %d\n", sqnorm(d.S1)+sqnorm(d.S2))

			checker, err := ringcheck.New(uint(falconapi.SignParameter))
			if err != nil {
				return err
			}
			if err := checker.Relation(d.S1, d.S2, d.PublicKey, c); err != nil {
				fmt.Fprintf(out, "relation: %v\n", err)
				return err
			}
			fmt.Fprintln(out, "relation: ok")
			return nil
		},
	}
	cmd.Flags().String(flagSig, "", "Signature in hex, or @file")
	cmd.Flags().String(flagPub, "", "Public key in hex, or @file")
	addMessageFlags(cmd)
	return cmd
}

func addMessageFlags(cmd *cobra.Command) {
	cmd.Flags().String(flagMessage, "", "Message as text")
	cmd.Flags().String(flagMessageHex, "", "Message in hex (takes precedence over --message)")
}

func messageInput(a *app) ([]byte, error) {
	if s := a.v.GetString(flagMessageHex); s != "" {
		return hexInput(s, flagMessageHex)
	}
	return []byte(a.v.GetString(flagMessage)), nil
}

// hexInput decodes a hex argument. A leading '@' names a file holding
// the hex text.
func hexInput(s, name string) ([]byte, error) {
	if s == "" {
		return nil, fmt.Errorf("--%s is required", name)
	}
	if path, ok := strings.CutPrefix(s, "@"); ok {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("--%s: %w", name, err)
		}
		s = string(data)
	}
	b, err := hex.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("--%s: %w", name, err)
	}
	return b, nil
}

func preview[T int16 | uint16](v []T) string {
	const shown = 8
	var sb strings.Builder
	sb.WriteByte('[')
	for i := 0; i < len(v) && i < shown; i++ {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprint(&sb, v[i])
	}
	if len(v) > shown {
		fmt.Fprintf(&sb, " ... (%d values)", len(v))
	}
	sb.WriteByte(']')
	return sb.String()
}

func sqnorm(v []int16) uint64 {
	var s uint64
	for _, x := range v {
		s += uint64(int64(x) * int64(x))
	}
	return s
}
