// Package smartsend simulates a transaction to size its compute budget, then
// signs and submits it.
package smartsend

import (
	"context"
	"math"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/gamba-labs/gamba-go/pkg/metrics"
	"github.com/gamba-labs/gamba-go/pkg/solana"
	compute_budget "github.com/gamba-labs/gamba-go/pkg/solana/computebudget"
)

const (
	metricsStructName = "smartsend.sender"

	degradedSimulationMetricName = "SmartSend.DegradedSimulation"
	submittedMetricName          = "SmartSend.Submitted"
)

// MaxComputeUnitLimit is the largest limit a transaction may request.
const MaxComputeUnitLimit = 1_400_000

// Transport is the RPC capability the Sender depends on.
type Transport interface {
	GetLatestBlockhash() (solana.Blockhash, error)
	SimulateTransaction(solana.Transaction, solana.Commitment) (solana.SimulationResult, error)
	SubmitTransaction(solana.Transaction, solana.SubmitOptions) (solana.Signature, error)
}

// readySigner is implemented by signers that can be temporarily unable to
// sign, such as a disconnected wallet.
type readySigner interface {
	Ready() bool
}

type Sender struct {
	log       *logrus.Entry
	conf      *conf
	transport Transport
	signer    solana.Signer
}

// New returns a Sender paying fees and signing with signer. A nil signer is
// allowed; every call then fails with solana.ErrWalletNotConnected.
func New(transport Transport, signer solana.Signer, configProvider ConfigProvider) *Sender {
	return &Sender{
		log:       logrus.StandardLogger().WithField("type", "smartsend/sender"),
		conf:      configProvider(),
		transport: transport,
		signer:    signer,
	}
}

// Simulate runs instructions against a fresh blockhash and returns the
// node's result unchanged. Instructions are not modified.
func (s *Sender) Simulate(ctx context.Context, instructions []solana.Instruction) (solana.SimulationResult, error) {
	tracer := metrics.TraceMethodCall(ctx, metricsStructName, "Simulate")
	defer tracer.End()

	res, err := func() (solana.SimulationResult, error) {
		if err := s.checkPreconditions(instructions); err != nil {
			return solana.SimulationResult{}, err
		}

		tracer.AddAttribute("instruction_count", len(instructions))

		blockhash, err := s.transport.GetLatestBlockhash()
		if err != nil {
			return solana.SimulationResult{}, errors.Wrap(err, "failed to get latest blockhash")
		}

		txn := solana.NewTransaction(s.signer.PublicKey(), instructions...)
		txn.SetBlockhash(blockhash)

		res, err := s.transport.SimulateTransaction(txn, s.preflightCommitment(ctx))
		if err != nil {
			return solana.SimulationResult{}, errors.Wrap(err, "failed to simulate transaction")
		}
		return res, nil
	}()
	if err != nil {
		tracer.OnError(err)
	}
	return res, err
}

// Send prepends a compute unit limit sized from a simulation, then signs and
// submits the transaction. A failed simulation does not fail the send; the
// limit falls back to the configured default.
func (s *Sender) Send(ctx context.Context, instructions []solana.Instruction) (solana.Signature, error) {
	tracer := metrics.TraceMethodCall(ctx, metricsStructName, "Send")
	defer tracer.End()

	sig, err := s.send(ctx, tracer, instructions)
	if err != nil {
		tracer.OnError(err)
	}
	return sig, err
}

func (s *Sender) send(ctx context.Context, tracer *metrics.MethodTracer, instructions []solana.Instruction) (solana.Signature, error) {
	var sig solana.Signature

	if err := s.checkPreconditions(instructions); err != nil {
		return sig, err
	}

	payer := s.signer.PublicKey()
	log := s.log.WithFields(logrus.Fields{
		"method":       "Send",
		"payer":        base58.Encode(payer),
		"instructions": len(instructions),
	})

	blockhash, err := s.transport.GetLatestBlockhash()
	if err != nil {
		return sig, errors.Wrap(err, "failed to get latest blockhash")
	}

	buffer := s.conf.computeUnitBuffer.Get(ctx)
	defaultUnits := s.conf.defaultComputeUnits.Get(ctx)

	provisional := solana.NewTransaction(payer, withComputeUnitLimit(clampLimit(defaultUnits), instructions)...)
	provisional.SetBlockhash(blockhash)

	units := defaultUnits
	degraded := true

	res, err := s.transport.SimulateTransaction(provisional, s.preflightCommitment(ctx))
	switch {
	case err != nil:
		log.WithError(err).WithField("degraded", true).Warn("simulation failed, using default compute units")
	case res.Err != nil:
		log.WithField("degraded", true).WithField("simulation_error", res.Err.Error()).Warn("simulation reported an error, using default compute units")
	case res.UnitsConsumed == nil:
		log.WithField("degraded", true).Warn("simulation omitted consumed units, using default compute units")
	default:
		units = *res.UnitsConsumed
		degraded = false
	}

	limit := ComputeLimit(units, buffer)

	tracer.AddAttributes(map[string]interface{}{
		"instruction_count":   len(instructions),
		"compute_unit_limit":  limit,
		"simulation_degraded": degraded,
	})
	if degraded {
		metrics.RecordCount(ctx, degradedSimulationMetricName, 1)
	}

	txn := solana.NewTransaction(payer, withComputeUnitLimit(limit, instructions)...)
	txn.SetBlockhash(blockhash)

	if err := txn.Sign(s.signer); err != nil {
		return sig, solana.NewSendError("sign", err)
	}

	sig, err = s.transport.SubmitTransaction(txn, solana.SubmitOptions{
		SkipPreflight:       s.conf.skipPreflight.Get(ctx),
		PreflightCommitment: s.preflightCommitment(ctx),
	})
	if err != nil {
		return sig, solana.NewSendError("submit", err)
	}

	metrics.RecordCount(ctx, submittedMetricName, 1)
	log.WithFields(logrus.Fields{
		"signature":          base58.Encode(sig[:]),
		"compute_unit_limit": limit,
	}).Debug("submitted transaction")

	return sig, nil
}

func (s *Sender) checkPreconditions(instructions []solana.Instruction) error {
	if len(instructions) == 0 {
		return solana.ErrNoInstructions
	}
	if s.signer == nil {
		return solana.ErrWalletNotConnected
	}
	if r, ok := s.signer.(readySigner); ok && !r.Ready() {
		return solana.ErrWalletNotConnected
	}
	return nil
}

func (s *Sender) preflightCommitment(ctx context.Context) solana.Commitment {
	name := s.conf.preflightCommitment.Get(ctx)

	commitment, err := solana.ParseCommitment(name)
	if err != nil {
		s.log.WithError(err).Warnf("invalid preflight commitment %q, using confirmed", name)
		return solana.CommitmentConfirmed
	}
	return commitment
}

// ComputeLimit returns ceil(units*buffer), capped at MaxComputeUnitLimit.
func ComputeLimit(units uint64, buffer float64) uint32 {
	// 100000*1.15 is 114999.99999999999 in float64.
	scaled := math.Round(float64(units)*buffer*1e6) / 1e6
	return clampLimit(uint64(math.Ceil(scaled)))
}

func clampLimit(units uint64) uint32 {
	if units > MaxComputeUnitLimit {
		return MaxComputeUnitLimit
	}
	return uint32(units)
}

func withComputeUnitLimit(limit uint32, instructions []solana.Instruction) []solana.Instruction {
	res := make([]solana.Instruction, 0, len(instructions)+1)
	res = append(res, compute_budget.SetComputeUnitLimit(limit))
	return append(res, instructions...)
}
