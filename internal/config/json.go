package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type StructuredJSONConfig struct {
	App struct {
		TokenSignKey  string   `json:"token_sign_key"`
		TokenIssuer   string   `json:"token_issuer"`
		TokenDuration Duration `json:"token_duration"`
		BcryptCost    int      `json:"bcrypt_cost"`
		AdminEmails   []string `json:"admin_emails"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress        string   `json:"http_address"`
		RequestTimeout     Duration `json:"request_timeout"`
		CORSAllowedOrigins []string `json:"cors_allowed_origins"`
	} `json:"server,omitempty"`

	Federation struct {
		GoogleTokenInfoURL string   `json:"google_tokeninfo_url"`
		FacebookGraphURL   string   `json:"facebook_graph_url"`
		RequestTimeout     Duration `json:"request_timeout"`
	} `json:"federation,omitempty"`

	RateLimit struct {
		Standard JSONWindow `json:"standard,omitempty"`
		Creation JSONWindow `json:"creation,omitempty"`
		Mutation JSONWindow `json:"mutation,omitempty"`
		Deletion JSONWindow `json:"deletion,omitempty"`
	} `json:"rate_limit,omitempty"`
}

type JSONWindow struct {
	Window Duration `json:"window"`
	Cap    int      `json:"cap"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			TokenSignKey:  jsonCfg.App.TokenSignKey,
			TokenIssuer:   jsonCfg.App.TokenIssuer,
			TokenDuration: time.Duration(jsonCfg.App.TokenDuration),
			BcryptCost:    jsonCfg.App.BcryptCost,
			AdminEmails:   jsonCfg.App.AdminEmails,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
		},
		Server: Server{
			HTTPAddress:        jsonCfg.Server.HTTPAddress,
			RequestTimeout:     time.Duration(jsonCfg.Server.RequestTimeout),
			CORSAllowedOrigins: jsonCfg.Server.CORSAllowedOrigins,
		},
		Federation: Federation{
			GoogleTokenInfoURL: jsonCfg.Federation.GoogleTokenInfoURL,
			FacebookGraphURL:   jsonCfg.Federation.FacebookGraphURL,
			RequestTimeout:     time.Duration(jsonCfg.Federation.RequestTimeout),
		},
		RateLimit: RateLimit{
			Standard: jsonCfg.RateLimit.Standard.toWindow(),
			Creation: jsonCfg.RateLimit.Creation.toWindow(),
			Mutation: jsonCfg.RateLimit.Mutation.toWindow(),
			Deletion: jsonCfg.RateLimit.Deletion.toWindow(),
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

func (w JSONWindow) toWindow() Window {
	return Window{
		Window: time.Duration(w.Window),
		Cap:    w.Cap,
	}
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
