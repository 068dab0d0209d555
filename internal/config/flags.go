package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress is the flag.Value behind -a.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses all configuration flags from args (usually
// os.Args[1:]).
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d database DSN
//	-c/-config json file path with configs
//	-token-sign-key token signing key
//	-token-signing-algorithm token signing algorithm (HS256, HS384, HS512)
//	-token-duration token duration (e.g., "30m", "1h")
//	-bcrypt-cost bcrypt work factor
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-allowed-origins comma-separated CORS origins
//	-app-version application version
//	-log-level minimum log level (trace, debug, info, warn, error)
func ParseFlags(args []string) (*StructuredConfig, error) {
	var serverAddress NetAddress
	var databaseDSN string
	var jsonConfigPath string
	var tokenSignKey string
	var tokenSigningAlgorithm string
	var tokenDuration time.Duration
	var bcryptCost int
	var requestTimeout time.Duration
	var allowedOrigins string
	var version string
	var logLevel string

	fs := flag.NewFlagSet("go-user-accounts", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	fs.StringVar(&tokenSigningAlgorithm, "token-signing-algorithm", "", "Token signing algorithm")
	fs.DurationVar(&tokenDuration, "token-duration", 0, "Token duration (e.g., 30m, 1h)")
	fs.IntVar(&bcryptCost, "bcrypt-cost", 0, "Bcrypt work factor")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.StringVar(&allowedOrigins, "allowed-origins", "", "Comma-separated CORS origins")
	fs.StringVar(&version, "app-version", "", "Application version")
	fs.StringVar(&logLevel, "log-level", "", "Minimum log level")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			TokenSignKey:          tokenSignKey,
			TokenSigningAlgorithm: tokenSigningAlgorithm,
			TokenDuration:         tokenDuration,
			BcryptCost:            bcryptCost,
			Version:               version,
			LogLevel:              logLevel,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
			AllowedOrigins: splitList(allowedOrigins),
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

var (
	errAddressFormat = errors.New("address must look like host:port")
	errAddressPort   = errors.New("port must be in range 1-65535")
	errAddressHost   = errors.New("host must be localhost or an IP literal")
)

// String joins the address back into host:port, bracketing IPv6 hosts.
// The zero NetAddress renders as "" so an unset -a flag stays unset.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}
	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

// Set accepts "host:port", ":port" and "[ipv6]:port". Hostnames other than
// localhost are rejected; the listener binds to literal addresses only.
func (a *NetAddress) Set(s string) error {
	host, rawPort, err := net.SplitHostPort(s)
	if err != nil {
		return fmt.Errorf("%w: %w", errAddressFormat, err)
	}

	port, err := strconv.Atoi(rawPort)
	if err != nil {
		return fmt.Errorf("%w: port %q is not a number", errAddressFormat, rawPort)
	}
	if port < 1 || port > 65535 {
		return errAddressPort
	}
	if host != "" && host != "localhost" && net.ParseIP(host) == nil {
		return errAddressHost
	}

	a.Host, a.Port = host, port
	return nil
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
