package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"slices"

	"github.com/pornin/go-falcon/falconapi"
	"github.com/pornin/go-falcon/internal/ringcheck"
	"go.uber.org/zap"
)

// trialConfig drives runTrials.
type trialConfig struct {
	Trials        int
	MaxMessage    int
	Seed          int64
	Extract       bool
	CheckRelation bool
}

type trialStats struct {
	Trials   int
	Failures int
}

// errTrialsFailed is returned when at least one trial failed.
var errTrialsFailed = errors.New("trials failed")

// runTrials generates a key pair per trial, signs a random message,
// verifies it, then checks that one-byte changes to the message, the
// signature and the public key are each rejected. With Extract, the
// signature vectors are decoded as well, and with CheckRelation the
// relation s1 + s2*h = c is recomputed independently.
func runTrials(e *falconapi.Engine, cfg trialConfig, log *zap.Logger, out io.Writer) (trialStats, error) {
	var stats trialStats
	if cfg.Trials <= 0 {
		return stats, fmt.Errorf("trial count must be positive, got %d", cfg.Trials)
	}
	if cfg.MaxMessage < 0 {
		return stats, fmt.Errorf("maximum message length must not be negative, got %d", cfg.MaxMessage)
	}
	var checker *ringcheck.Checker
	if cfg.CheckRelation {
		var err error
		if checker, err = ringcheck.New(uint(falconapi.SignParameter)); err != nil {
			return stats, err
		}
	}
	rng := rand.New(rand.NewSource(cfg.Seed))

	for i := 0; i < cfg.Trials; i++ {
		stats.Trials++
		msg := make([]byte, rng.Intn(cfg.MaxMessage+1))
		rng.Read(msg)
		if err := runTrial(e, rng, msg, cfg, checker); err != nil {
			stats.Failures++
			log.Error("trial failed",
				zap.Int("trial", i),
				zap.Int("msg_len", len(msg)),
				zap.Int("code", falconapi.StatusCode(err)),
				zap.Error(err))
			fmt.Fprintf(out, "trial %d: FAIL: %v\n", i, err)
			continue
		}
		log.Debug("trial passed", zap.Int("trial", i), zap.Int("msg_len", len(msg)))
	}

	fmt.Fprintf(out, "%d trials, %d failures\n", stats.Trials, stats.Failures)
	if stats.Failures > 0 {
		return stats, fmt.Errorf("%w: %d of %d", errTrialsFailed, stats.Failures, stats.Trials)
	}
	return stats, nil
}

func runTrial(e *falconapi.Engine, rng *rand.Rand, msg []byte, cfg trialConfig, checker *ringcheck.Checker) error {
	kp, err := e.GenerateKeyPair(falconapi.SignParameter)
	if err != nil {
		return fmt.Errorf("keygen: %w", err)
	}
	defer kp.Wipe()

	sig, err := e.SignKeyPair(msg, kp)
	if err != nil {
		return fmt.Errorf("sign: %w", err)
	}
	ok, err := e.Verify(msg, sig, kp.PublicKey)
	if err != nil {
		return fmt.Errorf("verify: %w", err)
	}
	if !ok {
		return errors.New("verify: valid signature rejected")
	}

	if len(msg) > 0 {
		if err := expectRejected(e, "message", mutate(rng, msg, 0), sig, kp.PublicKey); err != nil {
			return err
		}
	}
	if err := expectRejected(e, "signature", msg, mutate(rng, sig, 0), kp.PublicKey); err != nil {
		return err
	}
	// The header byte is kept: a public key with another header is a
	// parameter error rather than a rejection.
	if err := expectRejected(e, "public key", msg, sig, mutate(rng, kp.PublicKey, 1)); err != nil {
		return err
	}

	if !cfg.Extract && checker == nil {
		return nil
	}
	d, err := e.DecodeSignatureAndKeyAlloc(sig, kp.PublicKey, msg)
	if err != nil {
		return fmt.Errorf("extract: %w", err)
	}
	s2, err := e.DecodeShortVectorS2(sig)
	if err != nil {
		return fmt.Errorf("decode s2: %w", err)
	}
	if !slices.Equal(s2, d.S2) {
		return errors.New("decode s2: vector differs from extracted s2")
	}
	keys := e.DecodePublicKeys([][]byte{kp.PublicKey})
	if keys[0].Err != nil {
		return fmt.Errorf("decode public key: %w", keys[0].Err)
	}
	if !slices.Equal(keys[0].Coeffs, d.PublicKey) {
		return errors.New("decode public key: coefficients differ from extracted key")
	}
	if checker != nil {
		c, err := e.MessageHashPolynomial(nil, msg)
		if err != nil {
			return fmt.Errorf("hash: %w", err)
		}
		if err := checker.Relation(d.S1, d.S2, d.PublicKey, c); err != nil {
			return err
		}
	}
	return nil
}

// mutate returns a copy of b with one byte at index >= from changed.
func mutate(rng *rand.Rand, b []byte, from int) []byte {
	c := bytes.Clone(b)
	i := from + rng.Intn(len(c)-from)
	c[i] ^= byte(1 + rng.Intn(255))
	return c
}

func expectRejected(e *falconapi.Engine, what string, msg, sig, pub []byte) error {
	ok, err := e.Verify(msg, sig, pub)
	if err != nil {
		return fmt.Errorf("verify with modified %s: %w", what, err)
	}
	if ok {
		return fmt.Errorf("verify with modified %s: accepted", what)
	}
	return nil
}
