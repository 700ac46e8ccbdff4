package cmd

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/ncasas/mepreal"
	"github.com/ncasas/mepreal/argentinadatos"
	"github.com/ncasas/mepreal/bcra"
	"github.com/ncasas/mepreal/data912"
	"github.com/ncasas/mepreal/datosgobar"
	"github.com/ncasas/mepreal/httpcache"
	"github.com/ncasas/mepreal/yahoo"
)

// providers bundles one client per provider, built from the settings.
// Nominal sources sit behind the hourly cache, index sources behind the
// daily one, matching how often each provider publishes.
type providers struct {
	quotes  *argentinadatos.Client
	bank    *bcra.Client // hourly cached, for the implied-rate variable
	bankIPC *bcra.Client // daily cached, for the CPI variable
	prices  *data912.Client
	opendat *datosgobar.Client
	charts  *yahoo.Client
}

func newProviders(s mepreal.Settings, log zerolog.Logger) providers {
	hourly := httpcache.Hourly(bcra.DefaultTimeout, log)
	daily := httpcache.Daily(bcra.DefaultTimeout, log)
	short := httpcache.Hourly(10*time.Second, log)

	return providers{
		quotes: argentinadatos.New(
			argentinadatos.WithBaseURL(s.ArgentinaDatosURL),
			argentinadatos.WithHTTPClient(short),
			argentinadatos.WithLogger(log)),
		bank: bcra.New(s.BCRAToken,
			bcra.WithBaseURL(s.BCRAURL),
			bcra.WithHTTPClient(hourly),
			bcra.WithLogger(log)),
		bankIPC: bcra.New(s.BCRAToken,
			bcra.WithBaseURL(s.BCRAURL),
			bcra.WithHTTPClient(daily),
			bcra.WithLogger(log)),
		prices: data912.New(
			data912.WithBaseURL(s.Data912URL),
			data912.WithHTTPClient(short),
			data912.WithLogger(log)),
		opendat: datosgobar.New(
			datosgobar.WithBaseURL(s.DatosURL),
			datosgobar.WithHTTPClient(httpcache.Daily(10*time.Second, log)),
			datosgobar.WithLogger(log)),
		charts: yahoo.New(
			yahoo.WithBaseURL(s.YahooURL),
			yahoo.WithHTTPClient(short),
			yahoo.WithLogger(log)),
	}
}

// newComposer wires the nominal-rate strategy named by source:
//
//	quote  - quoted MEP rate, central bank as fallback
//	bond   - AL30 peso price over AL30D dollar price, both legs mandatory
//	equity - local share over its ADR, scaled by the conversion ratio; the
//	         local leg falls back to the Buenos Aires listing on Yahoo, the
//	         ADR leg is mandatory
func newComposer(p providers, s mepreal.Settings, source string, log zerolog.Logger) (mepreal.Composer, error) {
	switch source {
	case "quote":
		return mepreal.Composer{
			Method: mepreal.DirectQuote,
			Quote: mepreal.SourceChain{
				Primary:  p.quotes.Source(),
				Fallback: p.bank.Source(s.RateVariable),
				Log:      log,
			},
		}, nil

	case "bond":
		return mepreal.Composer{
			Method:  mepreal.BondRatio,
			Local:   mepreal.SourceChain{Primary: p.prices.Source(data912.MarketBonds, s.BondLocal), Log: log},
			Foreign: mepreal.SourceChain{Primary: p.prices.Source(data912.MarketBonds, s.BondDollar), Log: log},
			Band:    s.Band(),
		}, nil

	case "equity":
		return mepreal.Composer{
			Method: mepreal.EquityRatio,
			Local: mepreal.SourceChain{
				Primary:  p.prices.Source(data912.MarketStocks, s.EquityLocal),
				Fallback: p.charts.Source(s.EquityLocal + ".BA"),
				Log:      log,
			},
			Foreign: mepreal.SourceChain{Primary: p.charts.Source(s.EquityADR), Log: log},
			Scale:   s.ADRRatio,
			Band:    s.Band(),
		}, nil

	default:
		return mepreal.Composer{}, fmt.Errorf("unknown nominal source %q (want quote, bond or equity)", source)
	}
}

// newIndexer wires the price-index strategy named by index:
//
//	ipc   - INDEC national CPI from the open-data portal, central bank as
//	        fallback, extended with the already-published monthly changes
//	uscpi - the compiled-in US CPI-U table
func newIndexer(p providers, s mepreal.Settings, index string, log zerolog.Logger) (mepreal.Indexer, error) {
	switch index {
	case "ipc":
		return mepreal.Indexer{
			Chain: mepreal.SourceChain{
				Primary:  p.opendat.Source(s.IPCSeriesID),
				Fallback: p.bankIPC.Source(s.IPCVariable),
				Log:      log,
			},
			GapFill: mepreal.IPCRecent,
		}, nil

	case "uscpi":
		return mepreal.Indexer{
			Chain: mepreal.SourceChain{
				Primary: mepreal.StaticSource{Label: "uscpi", Points: mepreal.USCPI},
				Log:     log,
			},
		}, nil

	default:
		return mepreal.Indexer{}, fmt.Errorf("unknown price index %q (want ipc or uscpi)", index)
	}
}

// newPipeline assembles the full pipeline for the selected strategies.
func newPipeline(s mepreal.Settings, source, index string, log zerolog.Logger) (*mepreal.Pipeline, error) {
	p := newProviders(s, log)
	composer, err := newComposer(p, s, source, log)
	if err != nil {
		return nil, err
	}
	indexer, err := newIndexer(p, s, index, log)
	if err != nil {
		return nil, err
	}
	return &mepreal.Pipeline{Composer: composer, Indexer: indexer, Log: log}, nil
}

// highlightDate parses the -highlight override, defaulting to the settings.
func highlightDate(s mepreal.Settings, override string) (time.Time, error) {
	v := s.Highlight
	if override != "" {
		v = override
	}
	if v == "" {
		return time.Time{}, nil
	}
	return mepreal.ParseDay(v)
}

// checkedSources lists every configured source independently, for the check
// command to probe one by one.
func checkedSources(p providers, s mepreal.Settings) []mepreal.Source {
	return []mepreal.Source{
		p.quotes.Source(),
		p.bank.Source(s.RateVariable),
		p.bankIPC.Source(s.IPCVariable),
		p.prices.Source(data912.MarketBonds, s.BondLocal),
		p.prices.Source(data912.MarketBonds, s.BondDollar),
		p.prices.Source(data912.MarketStocks, s.EquityLocal),
		p.charts.Source(s.EquityLocal + ".BA"),
		p.charts.Source(s.EquityADR),
		p.opendat.Source(s.IPCSeriesID),
		mepreal.StaticSource{Label: "uscpi", Points: mepreal.USCPI},
	}
}
