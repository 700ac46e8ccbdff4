package mepreal

import (
	"github.com/kelseyhightower/envconfig"
)

// Settings is the process configuration, read from MEP_* environment
// variables. Credentials and endpoints are never compiled in: every client is
// constructed from whatever the environment supplies.
type Settings struct {
	// BCRAToken authenticates against the central bank's statistics API.
	// The API rejects anonymous calls, so without a token the bcra sources
	// only work as far as the cache carries them.
	BCRAToken string `envconfig:"BCRA_TOKEN"`
	BCRAURL   string `envconfig:"BCRA_URL" default:"https://api.bcra.gob.ar"`

	Data912URL        string `envconfig:"DATA912_URL" default:"https://data912.com"`
	ArgentinaDatosURL string `envconfig:"ARGENTINADATOS_URL" default:"https://api.argentinadatos.com"`
	DatosURL          string `envconfig:"DATOS_URL" default:"https://apis.datos.gob.ar"`
	YahooURL          string `envconfig:"YAHOO_URL" default:"https://query1.finance.yahoo.com"`

	// RateVariable and IPCVariable are the central bank's published variable
	// identifiers for the implied bond FX rate and the national CPI.
	RateVariable int `envconfig:"RATE_VARIABLE" default:"296"`
	IPCVariable  int `envconfig:"IPC_VARIABLE" default:"26"`

	// IPCSeriesID is the open-data portal's identifier for the national CPI,
	// general level, base Dec 2016.
	IPCSeriesID string `envconfig:"IPC_SERIES_ID" default:"148.3_INIVELNAL_DICI_M_26"`

	// BondLocal and BondDollar are the peso and dollar-settled tickers of the
	// sovereign bond pair behind the bond-ratio method.
	BondLocal  string `envconfig:"BOND_LOCAL" default:"AL30"`
	BondDollar string `envconfig:"BOND_DOLLAR" default:"AL30D"`

	// EquityLocal and EquityADR identify the cross-listed share behind the
	// equity-ratio method; ADRRatio is its shares-per-ADR conversion.
	EquityLocal string  `envconfig:"EQUITY_LOCAL" default:"GGAL"`
	EquityADR   string  `envconfig:"EQUITY_ADR" default:"GGAL"`
	ADRRatio    float64 `envconfig:"ADR_RATIO" default:"10"`

	// BandMin and BandMax bound plausible composed rates.
	BandMin float64 `envconfig:"BAND_MIN" default:"1"`
	BandMax float64 `envconfig:"BAND_MAX" default:"5000"`

	// Highlight is the start of the recent period emphasized in charts and
	// commentary (YYYY-MM-DD).
	Highlight string `envconfig:"HIGHLIGHT" default:"2024-04-15"`

	// GeminiModel picks the model used by the comment command.
	GeminiModel string `envconfig:"GEMINI_MODEL" default:"gemini-2.5-pro"`
}

// LoadSettings reads Settings from the environment.
func LoadSettings() (Settings, error) {
	var s Settings
	if err := envconfig.Process("MEP", &s); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Band returns the configured plausibility band.
func (s Settings) Band() Band {
	return Band{Min: s.BandMin, Max: s.BandMax}
}
