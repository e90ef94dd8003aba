package cmd

import (
	"fmt"
	"os"
	"time"

	logging "github.com/inconshreveable/log15"
	"github.com/spf13/cobra"

	cmdcommon "boscoin.io/ballot/cmd/ballot/common"
	"boscoin.io/ballot/lib/ballot"
	"boscoin.io/ballot/lib/client"
	"boscoin.io/ballot/lib/common"
	"boscoin.io/ballot/lib/contract"
	"boscoin.io/ballot/lib/ledger"
	"boscoin.io/ballot/lib/network"
	"boscoin.io/ballot/lib/network/api"
	"boscoin.io/ballot/lib/network/httpcache"
	"boscoin.io/ballot/lib/network/httputils"
)

const (
	defaultLogLevel logging.Lvl = logging.LvlInfo
	defaultEndpoint string      = "http://localhost:12345"
	defaultFormat   string      = "prettyjson"
)

var (
	flagLogLevel  string = common.GetENVValue("BALLOT_LOG_LEVEL", defaultLogLevel.String())
	flagLogOutput string = common.GetENVValue("BALLOT_LOG_OUTPUT", "stderr")
	flagFormat    string = common.GetENVValue("BALLOT_FORMAT", defaultFormat)
	flagEndpoint  string = common.GetENVValue("BALLOT_ENDPOINT", defaultEndpoint)
	flagNetworkID string = common.GetENVValue("BALLOT_NETWORK_ID", common.DefaultNetworkID)
	flagTimeout   string = common.GetENVValue("BALLOT_TIMEOUT", common.DefaultAwaitTimeout.String())
)

var (
	logLevel logging.Lvl
	log      logging.Logger = logging.New("module", "main")
	timeout  time.Duration
	encode   cmdcommon.Encode
)

var rootCmd = &cobra.Command{
	Use:   "ballot",
	Short: "ballot ledger node and client",
	PersistentPreRun: func(c *cobra.Command, args []string) {
		parseFlagsRoot(c)
	},
	Run: func(c *cobra.Command, args []string) {
		if len(args) < 1 {
			c.Usage()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", flagLogLevel, "log level, {crit, error, warn, info, debug}")
	rootCmd.PersistentFlags().StringVar(&flagLogOutput, "log-output", flagLogOutput, "log output, {stdout, stderr, <file path>}")
	rootCmd.PersistentFlags().StringVar(&flagFormat, "format", flagFormat, "output format, {json, prettyjson, yaml}")
	rootCmd.PersistentFlags().StringVar(&flagEndpoint, "endpoint", flagEndpoint, "endpoint of the node api")
	rootCmd.PersistentFlags().StringVar(&flagNetworkID, "network-id", flagNetworkID, "network id")
	rootCmd.PersistentFlags().StringVar(&flagTimeout, "timeout", flagTimeout, "timeout to wait the transaction applied")
}

func parseFlagsRoot(c *cobra.Command) {
	var err error

	if logLevel, err = logging.LvlFromString(flagLogLevel); err != nil {
		cmdcommon.PrintFlagsError(c, "--log-level", err)
	}

	var logHandler logging.Handler
	if logHandler, err = common.NewLogHandler(flagLogOutput); err != nil {
		cmdcommon.PrintFlagsError(c, "--log-output", err)
	}
	setLogging(logLevel, logHandler)

	if encode, err = cmdcommon.GetEncode(flagFormat); err != nil {
		cmdcommon.PrintFlagsError(c, "--format", err)
	}

	if timeout, err = time.ParseDuration(flagTimeout); err != nil || timeout <= 0 {
		cmdcommon.PrintFlagsError(c, "--timeout", err)
	}

	if len(flagNetworkID) < 1 {
		cmdcommon.PrintFlagsError(c, "--network-id", fmt.Errorf("--network-id must be given"))
	}
}

func setLogging(level logging.Lvl, handler logging.Handler) {
	log.SetHandler(logging.LvlFilterHandler(level, handler))

	ballot.SetLogging(level, handler)
	client.SetLogging(level, handler)
	common.SetLogging(level, handler)
	contract.SetLogging(level, handler)
	ledger.SetLogging(level, handler)
	network.SetLogging(level, handler)
	api.SetLogging(level, handler)
	httpcache.SetLogging(level, handler)
	httputils.SetLogging(level, handler)
}

// printResult writes v in the `--format`.
func printResult(v interface{}) {
	if err := encode(v, os.Stdout); err != nil {
		cmdcommon.PrintError(os.Stderr, err)
	}
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		cmdcommon.PrintError(os.Stderr, err)
	}
}

func SetArgs(s []string) {
	rootCmd.SetArgs(s)
}
