package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/oklog/run"
	"github.com/spf13/cobra"
	"golang.org/x/net/http2"

	cmdcommon "boscoin.io/ballot/cmd/ballot/common"
	"boscoin.io/ballot/lib/common"
	"boscoin.io/ballot/lib/ledger"
	"boscoin.io/ballot/lib/metrics"
	"boscoin.io/ballot/lib/network"
	"boscoin.io/ballot/lib/network/api"
	"boscoin.io/ballot/lib/network/httpcache"
	"boscoin.io/ballot/lib/storage"
)

const defaultBind string = "http://0.0.0.0:12345"

var (
	flagBind                string = common.GetENVValue("BALLOT_BIND", defaultBind)
	flagStorageConfigString string
	flagGenesisAddress      string = common.GetENVValue("BALLOT_GENESIS_ADDRESS", "")
	flagGenesisBalance      string = common.GetENVValue("BALLOT_GENESIS_BALANCE", common.MaximumBalance.String())
	flagBaseFee             string = common.GetENVValue("BALLOT_BASE_FEE", common.DefaultBaseFee.String())
	flagQueueSize           string = common.GetENVValue("BALLOT_QUEUE_SIZE", strconv.Itoa(common.DefaultQueueSize))
	flagRateLimit           string = common.GetENVValue("BALLOT_RATE_LIMIT", common.DefaultRateLimitAPI)
	flagHTTPCacheAdapter    string = common.GetENVValue("BALLOT_HTTP_CACHE_ADAPTER", common.HTTPCacheMemoryAdapterName)
	flagHTTPCachePoolSize   string = common.GetENVValue("BALLOT_HTTP_CACHE_POOL_SIZE", strconv.Itoa(common.DefaultHTTPCachePoolSize))
	flagHTTPCacheRedisAddrs cmdcommon.ListFlags
	flagTLSCertFile         string = common.GetENVValue("BALLOT_TLS_CERT", "ballot.crt")
	flagTLSKeyFile          string = common.GetENVValue("BALLOT_TLS_KEY", "ballot.key")
	flagVerbose             bool   = common.GetENVValue("BALLOT_VERBOSE", "0") == "1"
)

var (
	nodeCmd *cobra.Command

	bindEndpoint   *common.Endpoint
	serverConfig   *network.HTTP2ServerConfig
	storageConfig  *storage.Config
	ledgerConfig   common.Config
	genesisBalance common.Amount
)

func init() {
	nodeCmd = &cobra.Command{
		Use:   "node",
		Short: "Run the ledger node and its api",
		Run: func(c *cobra.Command, args []string) {
			parseFlagsNode(c)

			if err := runNode(); err != nil {
				cmdcommon.PrintError(os.Stderr, err)
			}
		},
	}

	currentDirectory, err := os.Getwd()
	if err == nil {
		currentDirectory, err = filepath.Abs(currentDirectory)
	}
	if err != nil {
		currentDirectory = "."
	}
	flagStorageConfigString = common.GetENVValue("BALLOT_STORAGE", fmt.Sprintf("file://%s/db", currentDirectory))

	nodeCmd.Flags().StringVar(&flagBind, "bind", flagBind, "endpoint uri to listen on ('http://0.0.0.0:12345')")
	nodeCmd.Flags().StringVar(&flagStorageConfigString, "storage", flagStorageConfigString, "storage uri, {memory://, file:///path}")
	nodeCmd.Flags().StringVar(&flagGenesisAddress, "genesis-address", flagGenesisAddress, "address of the genesis account, created at the first start")
	nodeCmd.Flags().StringVar(&flagGenesisBalance, "genesis-balance", flagGenesisBalance, "initial balance of the genesis account")
	nodeCmd.Flags().StringVar(&flagBaseFee, "base-fee", flagBaseFee, "minimum fee per operation")
	nodeCmd.Flags().StringVar(&flagQueueSize, "queue-size", flagQueueSize, "maximum number of the pending transactions")
	nodeCmd.Flags().StringVar(&flagRateLimit, "rate-limit", flagRateLimit, "rate limit of the api per client, like '100-S'; empty does not limit")
	nodeCmd.Flags().StringVar(&flagHTTPCacheAdapter, "http-cache-adapter", flagHTTPCacheAdapter, "http cache adapter, {mem, redis, none}")
	nodeCmd.Flags().StringVar(&flagHTTPCachePoolSize, "http-cache-pool-size", flagHTTPCachePoolSize, "size of the memory http cache")
	nodeCmd.Flags().Var(&flagHTTPCacheRedisAddrs, "http-cache-redis-addr", "redis address for the http cache, '<name>=<host:port>'; can be given multiple times")
	nodeCmd.Flags().StringVar(&flagTLSCertFile, "tls-cert", flagTLSCertFile, "tls certificate file for https")
	nodeCmd.Flags().StringVar(&flagTLSKeyFile, "tls-key", flagTLSKeyFile, "tls key file for https")
	nodeCmd.Flags().BoolVar(&flagVerbose, "verbose", flagVerbose, "verbose http2 log")

	rootCmd.AddCommand(nodeCmd)
}

func parseFlagsNode(c *cobra.Command) {
	var err error

	if bindEndpoint, err = common.ParseEndpoint(flagBind); err != nil {
		cmdcommon.PrintFlagsError(c, "--bind", err)
	}

	if bindEndpoint.Scheme == "https" {
		if _, err = os.Stat(flagTLSCertFile); os.IsNotExist(err) {
			cmdcommon.PrintFlagsError(c, "--tls-cert", err)
		}
		if _, err = os.Stat(flagTLSKeyFile); os.IsNotExist(err) {
			cmdcommon.PrintFlagsError(c, "--tls-key", err)
		}

		queries := bindEndpoint.Query()
		queries.Set("TLSCertFile", flagTLSCertFile)
		queries.Set("TLSKeyFile", flagTLSKeyFile)
		bindEndpoint.RawQuery = queries.Encode()
	}

	if serverConfig, err = network.NewHTTP2ServerConfigFromEndpoint(bindEndpoint); err != nil {
		cmdcommon.PrintFlagsError(c, "--bind", err)
	}

	if storageConfig, err = storage.NewConfigFromString(flagStorageConfigString); err != nil {
		cmdcommon.PrintFlagsError(c, "--storage", err)
	}

	if len(flagGenesisAddress) > 0 {
		if _, err = cmdcommon.ParseAddress(flagGenesisAddress); err != nil {
			cmdcommon.PrintFlagsError(c, "--genesis-address", err)
		}
		if genesisBalance, err = cmdcommon.ParseAmountFromString(flagGenesisBalance); err != nil {
			cmdcommon.PrintFlagsError(c, "--genesis-balance", err)
		}
	}

	ledgerConfig = common.NewConfig([]byte(flagNetworkID))
	if ledgerConfig.BaseFee, err = cmdcommon.ParseAmountFromString(flagBaseFee); err != nil {
		cmdcommon.PrintFlagsError(c, "--base-fee", err)
	}
	if ledgerConfig.QueueSize, err = strconv.Atoi(flagQueueSize); err != nil || ledgerConfig.QueueSize < 1 {
		cmdcommon.PrintFlagsError(c, "--queue-size", fmt.Errorf("invalid queue size: %q", flagQueueSize))
	}

	if _, err = network.RateLimitMiddleware(flagRateLimit); err != nil {
		cmdcommon.PrintFlagsError(c, "--rate-limit", err)
	}
	ledgerConfig.RateLimitRuleAPI = flagRateLimit

	if ledgerConfig.HTTPCacheAdapter, ledgerConfig.HTTPCacheRedisAddrs, err = parseHTTPCache(flagHTTPCacheAdapter, flagHTTPCacheRedisAddrs); err != nil {
		cmdcommon.PrintFlagsError(c, "--http-cache-adapter", err)
	}
	if ledgerConfig.HTTPCachePoolSize, err = strconv.Atoi(flagHTTPCachePoolSize); err != nil || ledgerConfig.HTTPCachePoolSize < 1 {
		cmdcommon.PrintFlagsError(c, "--http-cache-pool-size", fmt.Errorf("invalid pool size: %q", flagHTTPCachePoolSize))
	}

	if flagVerbose {
		http2.VerboseLogs = true
	}

	log.Debug(
		"parsed flags:",
		"\n\tnetwork-id", flagNetworkID,
		"\n\tbind", bindEndpoint,
		"\n\tstorage", storageConfig,
		"\n\tgenesis-address", flagGenesisAddress,
		"\n\tbase-fee", ledgerConfig.BaseFee,
		"\n\tqueue-size", ledgerConfig.QueueSize,
		"\n\trate-limit", ledgerConfig.RateLimitRuleAPI,
		"\n\thttp-cache-adapter", ledgerConfig.HTTPCacheAdapter,
		"\n\tlog-level", flagLogLevel,
		"\n\tlog-output", flagLogOutput,
	)
}

// parseHTTPCache parses the redis addresses like "shard1=localhost:6379".
func parseHTTPCache(adapter string, addrs []string) (string, map[string]string, error) {
	switch adapter {
	case common.HTTPCacheMemoryAdapterName, common.HTTPCacheNoneAdapterName:
		return adapter, nil, nil
	case common.HTTPCacheRedisAdapterName:
	default:
		return "", nil, fmt.Errorf("unknown http cache adapter: %q", adapter)
	}

	if len(addrs) < 1 {
		return "", nil, fmt.Errorf("--http-cache-redis-addr must be given for redis")
	}

	parsed := map[string]string{}
	for i, addr := range addrs {
		name, host := fmt.Sprintf("server%d", i), addr
		if s := strings.SplitN(addr, "=", 2); len(s) == 2 {
			name, host = s[0], s[1]
		}
		if _, found := parsed[name]; found {
			return "", nil, fmt.Errorf("duplicated redis name: %q", name)
		}
		parsed[name] = host
	}

	return adapter, parsed, nil
}

func openStorage(config *storage.Config) (*storage.LevelDBBackend, error) {
	st := &storage.LevelDBBackend{}
	if err := st.Init(config); err != nil {
		return nil, err
	}

	return st, nil
}

func runNode() error {
	st, err := openStorage(storageConfig)
	if err != nil {
		log.Crit("failed to initialize storage", "error", err)
		return err
	}
	defer st.Close()

	if len(flagGenesisAddress) > 0 {
		created, err := ledger.InitGenesis(st, flagGenesisAddress, genesisBalance)
		if err != nil {
			log.Crit("failed to initialize genesis account", "error", err)
			return err
		}
		log.Info("genesis account", "address", flagGenesisAddress, "created", created)
	}

	l, err := ledger.NewLocal(st, ledgerConfig)
	if err != nil {
		return err
	}

	metrics.InitPrometheusMetrics()
	metrics.SetVersion()

	cache, err := httpcache.New(ledgerConfig)
	if err != nil {
		return err
	}

	server := network.NewHTTP2Server(serverConfig)
	if err = api.NewNetworkHandlerAPI(l, cache).Register(server, ledgerConfig); err != nil {
		return err
	}

	l.Start()
	defer l.Stop()

	log.Info("starting ballot node", "bind", bindEndpoint, "storage", storageConfig)

	// Execution group.
	var g run.Group
	{
		g.Add(func() error {
			if err := server.Start(); err != nil {
				log.Crit("failed to start server", "error", err)
				return err
			}
			return nil
		}, func(error) {
			server.Stop()
		})
	}
	{
		cancel := make(chan struct{})
		g.Add(func() error {
			err := cmdcommon.Interrupt(cancel)
			log.Info("stopping ballot node", "reason", err)
			return nil
		}, func(error) {
			close(cancel)
		})
	}

	return g.Run()
}
