// Package analyst asks a Gemini model for a short written read of the
// adjusted series. It is a single question and a single answer, no chat
// state survives the call.
package analyst

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/ncasas/mepreal"
)

// DefaultModel is used when the caller does not pick one.
const DefaultModel = "gemini-2.5-pro"

const systemPrompt = `Sos un analista económico argentino. Recibís un resumen
numérico de la serie del dólar MEP expresada a precios de hoy (ajustada por
inflación al último dato de IPC disponible).

Escribí un comentario breve, de dos o tres párrafos, en castellano rioplatense:
qué tan caro o barato está el dólar en términos reales respecto de su propia
historia, y qué pasó en el período reciente. Basate únicamente en las cifras
del resumen, sin inventar datos ni hacer recomendaciones de inversión.`

// Comment sends a digest of the series to the model and returns its reply.
//
// The client carries the credentials; construct it with genai.NewClient,
// which reads them from the environment.
func Comment(ctx context.Context, client *genai.Client, model string, adj *mepreal.AdjustedSeries, highlightFrom time.Time) (string, error) {
	if model == "" {
		model = DefaultModel
	}
	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: systemPrompt}}},
	}
	chat, err := client.Chats.Create(ctx, model, config, nil)
	if err != nil {
		return "", fmt.Errorf("create chat: %w", err)
	}

	resp, err := chat.Send(ctx, &genai.Part{Text: Digest(adj, highlightFrom)})
	if err != nil {
		return "", fmt.Errorf("send digest: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from %s", model)
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}

// Digest condenses the adjusted series into the few figures the model needs.
// All values are adjusted (constant) pesos unless noted.
func Digest(adj *mepreal.AdjustedSeries, highlightFrom time.Time) string {
	first := adj.Records[0]
	last := adj.Last()

	var sum float64
	lo, hi := first, first
	for _, r := range adj.Records {
		sum += r.Adjusted
		if r.Adjusted < lo.Adjusted {
			lo = r
		}
		if r.Adjusted > hi.Adjusted {
			hi = r
		}
	}
	mean := sum / float64(len(adj.Records))

	var b strings.Builder
	fmt.Fprintf(&b, "Serie: dólar MEP ajustado por IPC (%s), %d observaciones de %s a %s.\n",
		adj.Method, len(adj.Records), first.Date.Format("2006-01-02"), last.Date.Format("2006-01-02"))
	fmt.Fprintf(&b, "Último dato de IPC: %s.\n", adj.LatestIndexDate.Format("2006-01"))
	fmt.Fprintf(&b, "Último valor: %.0f nominal, %.0f ajustado (%+.1f%% respecto de la media histórica de %.0f).\n",
		last.Nominal, last.Adjusted, 100*(last.Adjusted-mean)/mean, mean)
	fmt.Fprintf(&b, "Mínimo histórico ajustado: %.0f (%s). Máximo: %.0f (%s).\n",
		lo.Adjusted, lo.Date.Format("2006-01-02"), hi.Adjusted, hi.Date.Format("2006-01-02"))

	if !highlightFrom.IsZero() {
		wlo, whi, n := window(adj.Records, highlightFrom)
		if n > 0 {
			fmt.Fprintf(&b, "Período reciente (desde %s, %d ruedas): entre %.0f y %.0f ajustado.\n",
				highlightFrom.Format("2006-01-02"), n, wlo, whi)
		}
	}
	return b.String()
}

// window returns the adjusted extremes and the row count from the given date.
func window(records []mepreal.AdjustedRecord, from time.Time) (lo, hi float64, n int) {
	for _, r := range records {
		if r.Date.Before(from) {
			continue
		}
		if n == 0 || r.Adjusted < lo {
			lo = r.Adjusted
		}
		if n == 0 || r.Adjusted > hi {
			hi = r.Adjusted
		}
		n++
	}
	return lo, hi, n
}
