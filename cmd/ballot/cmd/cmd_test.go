package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	cmdcommon "boscoin.io/ballot/cmd/ballot/common"
	"boscoin.io/ballot/lib/client"
	"boscoin.io/ballot/lib/common"
	"boscoin.io/ballot/lib/common/keypair"
	"boscoin.io/ballot/lib/contract/native/execfunc"
	"boscoin.io/ballot/lib/errors"
	"boscoin.io/ballot/lib/ledger"
	"boscoin.io/ballot/lib/network"
	"boscoin.io/ballot/lib/network/api"
	"boscoin.io/ballot/lib/network/httpcache"
)

var testNetworkID = []byte("cmd-test-network")

type testNode struct {
	t       *testing.T
	l       *ledger.Local
	genesis *keypair.Full
	server  *httptest.Server
	clients []*client.Client
}

func newTestNode(t *testing.T) *testNode {
	conf := common.NewConfig(testNetworkID)
	conf.RateLimitRuleAPI = ""

	l, genesis := ledger.NewTestLocal(conf)
	l.Start()

	endpoint, err := common.ParseEndpoint("http://localhost:12345")
	require.NoError(t, err)
	config, err := network.NewHTTP2ServerConfigFromEndpoint(endpoint)
	require.NoError(t, err)

	s := network.NewHTTP2Server(config)
	cache, err := httpcache.New(conf)
	require.NoError(t, err)
	require.NoError(t, api.NewNetworkHandlerAPI(l, cache).Register(s, conf))

	return &testNode{t: t, l: l, genesis: genesis, server: httptest.NewServer(s.Handler())}
}

func (n *testNode) done() {
	for _, c := range n.clients {
		c.Close()
	}
	n.server.Close()
	n.l.Stop()
	n.l.Storage().Close()
}

func (n *testNode) wallet(kp *keypair.Full, minBalance common.Amount) *wallet {
	c, err := client.NewClient(n.server.URL)
	require.NoError(n.t, err)
	n.clients = append(n.clients, c)

	return newWallet(kp, c, testNetworkID, common.DefaultBaseFee, minBalance)
}

func testContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 5*time.Second)
}

func TestCommandsBallot(t *testing.T) {
	n := newTestNode(t)
	defer n.done()

	ctx, cancel := testContext()
	defer cancel()

	chair, voter := keypair.Random(), keypair.Random()
	genesis := n.wallet(n.genesis, common.DefaultBaseFee)

	r, err := runPayment(ctx, genesis, chair.Address(), common.Amount(100000000), true)
	require.NoError(t, err)
	require.Equal(t, ledger.StatusApplied, r.Status)
	_, err = runPayment(ctx, genesis, voter.Address(), common.Amount(100000000), true)
	require.NoError(t, err)

	ac, err := runShowAccount(ctx, genesis.l, chair.Address())
	require.NoError(t, err)
	require.Equal(t, common.Amount(100000000), ac.Balance)

	w := n.wallet(chair, common.DefaultBaseFee)
	deployed, err := runDeploy(ctx, w, false, "Proposal 1", "Proposal 2")
	require.NoError(t, err)
	require.NotEmpty(t, deployed.Contract)

	_, err = runExecute(ctx, w, deployed.Contract, execfunc.MethodGiveRightToVote, voter.Address())
	require.NoError(t, err)

	voted, err := runVote(ctx, n.wallet(voter, common.DefaultBaseFee), deployed.Contract, 1)
	require.NoError(t, err)
	require.NotEmpty(t, voted.Hash)
	require.Equal(t, uint64(0), voted.Before.VoteCount)
	require.Equal(t, uint64(1), voted.After.VoteCount)
	require.Equal(t, "Proposal 2", voted.After.Name)

	result, err := runResult(ctx, w.l, deployed.Contract)
	require.NoError(t, err)
	require.Equal(t, winnerResult{Index: 1, Name: "Proposal 2", Votes: 1}, result)

	{ // voting twice
		_, err := runVote(ctx, n.wallet(voter, common.DefaultBaseFee), deployed.Contract, 0)
		require.True(t, errors.Is(err, errors.ErrorAlreadyVoted))
	}

	{ // invalid proposal
		_, err := runVote(ctx, w, deployed.Contract, 5)
		require.True(t, errors.Is(err, errors.ErrorInvalidProposal))
	}
}

func TestCommandsMinBalance(t *testing.T) {
	n := newTestNode(t)
	defer n.done()

	ctx, cancel := testContext()
	defer cancel()

	poor := keypair.Random()
	_, err := runPayment(ctx, n.wallet(n.genesis, 0), poor.Address(), common.Amount(50000), true)
	require.NoError(t, err)

	w := n.wallet(poor, common.Amount(100000))
	_, err = runDeploy(ctx, w, false, "A")
	require.True(t, errors.Is(err, errors.ErrorNotEnoughBalance))
	require.Equal(t, "Not enough balance", err.(*errors.Error).Message)

	// nothing was submitted
	ac, err := runShowAccount(ctx, w.l, poor.Address())
	require.NoError(t, err)
	require.Equal(t, uint64(0), ac.SequenceID)
	require.Equal(t, common.Amount(50000), ac.Balance)
}

func TestParseHTTPCache(t *testing.T) {
	adapter, addrs, err := parseHTTPCache(common.HTTPCacheMemoryAdapterName, nil)
	require.NoError(t, err)
	require.Equal(t, common.HTTPCacheMemoryAdapterName, adapter)
	require.Nil(t, addrs)

	_, _, err = parseHTTPCache(common.HTTPCacheRedisAdapterName, nil)
	require.Error(t, err)

	_, addrs, err = parseHTTPCache(common.HTTPCacheRedisAdapterName, []string{"a=localhost:6379", "localhost:6380"})
	require.NoError(t, err)
	require.Equal(t, map[string]string{"a": "localhost:6379", "server1": "localhost:6380"}, addrs)

	_, _, err = parseHTTPCache(common.HTTPCacheRedisAdapterName, []string{"a=localhost:6379", "a=localhost:6380"})
	require.Error(t, err)

	_, _, err = parseHTTPCache("memcached", nil)
	require.Error(t, err)
}

func TestParseFlagsNode(t *testing.T) {
	genesis := keypair.Random()

	flagNetworkID = "cmd-test-network"
	flagBind = "http://0.0.0.0:23456"
	flagStorageConfigString = "memory://"
	flagGenesisAddress = genesis.Address()
	flagGenesisBalance = "1,000,000"
	flagBaseFee = "20000"
	flagQueueSize = "10"
	flagRateLimit = "10-S"
	flagHTTPCacheAdapter = common.HTTPCacheNoneAdapterName

	parseFlagsNode(nodeCmd)

	require.Equal(t, "0.0.0.0:23456", serverConfig.Addr)
	require.Equal(t, "memory", storageConfig.Scheme)
	require.Equal(t, common.Amount(1000000), genesisBalance)
	require.Equal(t, common.Amount(20000), ledgerConfig.BaseFee)
	require.Equal(t, 10, ledgerConfig.QueueSize)
	require.Equal(t, "10-S", ledgerConfig.RateLimitRuleAPI)
	require.Equal(t, []byte(flagNetworkID), ledgerConfig.NetworkID)
}

func TestEncodes(t *testing.T) {
	v := winnerResult{Index: 1, Name: "Proposal 2", Votes: 3}

	{
		var b bytes.Buffer
		require.NoError(t, cmdcommon.DefaultEncodes["json"](v, &b))

		var decoded winnerResult
		require.NoError(t, json.Unmarshal(b.Bytes(), &decoded))
		require.Equal(t, v, decoded)
	}

	{
		var b bytes.Buffer
		require.NoError(t, cmdcommon.DefaultEncodes["yaml"](v, &b))
		require.Equal(t, "index: 1\nname: Proposal 2\nvotes: 3\n", b.String())
	}

	_, err := cmdcommon.GetEncode("xml")
	require.Error(t, err)
}
