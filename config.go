package gobtc

import (
	"fmt"
	"net/http"
	"time"
)

// Network selects which node network's default RPC port the client dials.
type Network string

// Supported networks.
const (
	NetworkMainnet Network = "mainnet"
	NetworkRegtest Network = "regtest"
	NetworkSignet  Network = "signet"
	NetworkTestnet Network = "testnet"
)

// networkPorts is the fixed network-to-port table. An explicit UsePort
// always wins over these defaults.
var networkPorts = map[Network]int{
	NetworkMainnet: 8332,
	NetworkRegtest: 18332,
	NetworkSignet:  38332,
	NetworkTestnet: 18332,
}

const (
	defaultHost     = "127.0.0.1"
	defaultProtocol = "http"
	defaultTimeout  = 30 * time.Second
)

// ClientConfig holds all configuration for Client. Values are gathered
// through ClientConfigOption functions and resolved once by NewClient;
// nothing here is re-read after construction.
type ClientConfig struct {
	network    Network
	host       string
	port       int
	protocol   string
	username   string
	password   string
	cookieFile string
	timeout    time.Duration
	logger     Logger
	httpClient *http.Client
	transport  Transport
}

// ClientConfigOption is a function that modifies ClientConfig.
type ClientConfigOption func(*ClientConfig)

// UseNetwork selects the network whose default port is dialed when no
// explicit port is configured. Defaults to mainnet.
func UseNetwork(network Network) ClientConfigOption {
	return func(c *ClientConfig) {
		c.network = network
	}
}

// UseHost sets the node host. Defaults to 127.0.0.1.
func UseHost(host string) ClientConfigOption {
	return func(c *ClientConfig) {
		c.host = host
	}
}

// UsePort sets an explicit RPC port, overriding the network default.
func UsePort(port int) ClientConfigOption {
	return func(c *ClientConfig) {
		c.port = port
	}
}

// UseProtocol selects "http" or "https". Defaults to http.
func UseProtocol(protocol string) ClientConfigOption {
	return func(c *ClientConfig) {
		c.protocol = protocol
	}
}

// UseBasicAuth sets explicit RPC credentials. A configured cookie file
// takes precedence over these.
func UseBasicAuth(username, password string) ClientConfigOption {
	return func(c *ClientConfig) {
		c.username = username
		c.password = password
	}
}

// UseCookieFile points the client at a node-generated cookie file holding
// a single username:password line. Cookie credentials override any
// explicit username and password.
func UseCookieFile(path string) ClientConfigOption {
	return func(c *ClientConfig) {
		c.cookieFile = path
	}
}

// UseTimeout sets the default per-call timeout. Defaults to 30 seconds.
// Individual calls may override it with UseCallTimeout.
func UseTimeout(timeout time.Duration) ClientConfigOption {
	return func(c *ClientConfig) {
		c.timeout = timeout
	}
}

// UseLogger sets a custom logger. A nil logger keeps the silent default.
func UseLogger(logger Logger) ClientConfigOption {
	return func(c *ClientConfig) {
		c.logger = logger
	}
}

// UseHTTPClient supplies the http.Client the default transport sends
// through, for callers that tune TLS, proxies or connection pooling.
func UseHTTPClient(client *http.Client) ClientConfigOption {
	return func(c *ClientConfig) {
		c.httpClient = client
	}
}

// UseTransport replaces the wire transport entirely. Mostly useful in
// tests; overrides UseHTTPClient.
func UseTransport(transport Transport) ClientConfigOption {
	return func(c *ClientConfig) {
		c.transport = transport
	}
}

func defaultClientConfig() *ClientConfig {
	return &ClientConfig{
		logger: NewNullLogger(),
	}
}

// endpoint is the fully resolved dial target. Derived once at construction
// and immutable afterwards.
type endpoint struct {
	host     string
	port     int
	protocol string
	timeout  time.Duration
}

// url renders the endpoint as the node's RPC root URL.
func (e endpoint) url() string {
	return fmt.Sprintf("%s://%s:%d/", e.protocol, e.host, e.port)
}

// resolveEndpoint applies the defaulting chain over the raw configuration.
// An unset network means mainnet; an unrecognized one is a configuration
// error.
func resolveEndpoint(cfg *ClientConfig) (endpoint, error) {
	network := cfg.network
	if network == "" {
		network = NetworkMainnet
	}
	port, ok := networkPorts[network]
	if !ok {
		return endpoint{}, fmt.Errorf("%w: unknown network %q", ErrInvalidConfig, cfg.network)
	}
	if cfg.port != 0 {
		if cfg.port < 0 || cfg.port > 65535 {
			return endpoint{}, fmt.Errorf("%w: port %d out of range", ErrInvalidConfig, cfg.port)
		}
		port = cfg.port
	}

	protocol := cfg.protocol
	if protocol == "" {
		protocol = defaultProtocol
	}
	if protocol != "http" && protocol != "https" {
		return endpoint{}, fmt.Errorf("%w: protocol must be http or https, got %q", ErrInvalidConfig, cfg.protocol)
	}

	host := cfg.host
	if host == "" {
		host = defaultHost
	}

	timeout := cfg.timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	if timeout < 0 {
		return endpoint{}, fmt.Errorf("%w: negative timeout %s", ErrInvalidConfig, cfg.timeout)
	}

	return endpoint{
		host:     host,
		port:     port,
		protocol: protocol,
		timeout:  timeout,
	}, nil
}
