package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the layout of the file passed with -c. Unknown
// keys are rejected so a misspelt setting fails loudly.
type StructuredJSONConfig struct {
	App struct {
		TokenSignKey          string   `json:"token_sign_key,omitempty"`
		TokenSigningAlgorithm string   `json:"token_signing_algorithm,omitempty"`
		TokenDuration         Duration `json:"token_duration,omitempty"`
		BcryptCost            int      `json:"bcrypt_cost,omitempty"`
		Version               string   `json:"version,omitempty"`
		LogLevel              string   `json:"log_level,omitempty"`
	} `json:"app"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn,omitempty"`
		} `json:"db"`
	} `json:"storage"`

	Server struct {
		HTTPAddress    string   `json:"http_address,omitempty"`
		RequestTimeout Duration `json:"request_timeout,omitempty"`
		AllowedOrigins []string `json:"allowed_origins,omitempty"`
	} `json:"server"`
}

func (j *StructuredJSONConfig) structured() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenSignKey:          j.App.TokenSignKey,
			TokenSigningAlgorithm: j.App.TokenSigningAlgorithm,
			TokenDuration:         time.Duration(j.App.TokenDuration),
			BcryptCost:            j.App.BcryptCost,
			Version:               j.App.Version,
			LogLevel:              j.App.LogLevel,
		},
		Storage: Storage{DB: DB{DSN: j.Storage.DB.DSN}},
		Server: Server{
			HTTPAddress:    j.Server.HTTPAddress,
			RequestTimeout: time.Duration(j.Server.RequestTimeout),
			AllowedOrigins: j.Server.AllowedOrigins,
		},
	}
}

func parseJSON(path string) (*StructuredConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()

	var file StructuredJSONConfig
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return file.structured(), nil
}

// Duration accepts either a Go duration string ("90s") or an integer
// number of nanoseconds.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var text string
	if err := json.Unmarshal(b, &text); err == nil {
		parsed, err := time.ParseDuration(text)
		if err != nil {
			return err
		}
		*d = Duration(parsed)
		return nil
	}

	var nanos int64
	if err := json.Unmarshal(b, &nanos); err != nil {
		return fmt.Errorf("duration must be a string or integer nanoseconds: %w", err)
	}
	*d = Duration(nanos)
	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
