package engine

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kamusis/kiosk/internal/retrieval"
	"github.com/kamusis/kiosk/internal/safety"
)

// Response is the outcome of Answer.
type Response struct {
	Decision Decision      `json:"decision"`
	Grounded bool          `json:"grounded"`
	Prompt   string        `json:"prompt"`
	Reply    string        `json:"reply"`
	Safety   safety.Result `json:"safety"`
}

// Answer runs the full flow: decide, pass the chunks through the confidence
// gate, build the prompt (listing references only when the gate trusts
// them), call the model and screen both the query and the reply.
//
// A model error is returned wrapped together with the partial Response, so
// callers can still show the decision and prompt; with the default caller
// that error is llm.ErrNotWired.
func (e *Engine) Answer(ctx context.Context, query, area string) (Response, error) {
	log := e.runLogger()
	d, err := e.decide(ctx, log, query, area)
	if err != nil {
		return Response{}, err
	}

	resp := Response{Decision: d, Grounded: retrieval.EnoughContext(d.Chunks, e.gate)}
	var refs []retrieval.Chunk
	if resp.Grounded {
		refs = d.Chunks
	} else if len(d.Chunks) > 0 {
		strong, coverage := retrieval.Coverage(d.Chunks, e.gate.MinScore)
		log.Debug("references below confidence gate",
			zap.Int("chunks", len(d.Chunks)), zap.Int("strong", strong), zap.Float64("coverage", coverage))
	}
	resp.Prompt = e.assembler.Build(query, refs, d.Manifest, area)
	resp.Safety = e.screener.Screen(query, "", safetyRules(d.Manifest))

	reply, err := e.caller.Call(ctx, resp.Prompt)
	if err != nil {
		return resp, fmt.Errorf("call model for %s/%s: %w", d.Domain, d.Task, err)
	}
	resp.Reply = reply
	resp.Safety = e.screener.Screen(query, reply, safetyRules(d.Manifest))
	if !resp.Safety.OK {
		log.Warn("safety flags raised", zap.String("domain", d.Domain), zap.Strings("flags", resp.Safety.Flags))
	}
	return resp, nil
}
