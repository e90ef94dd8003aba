package api

import (
	"net/http"

	"github.com/gorilla/rpc"
	jsonrpc "github.com/gorilla/rpc/json"

	"boscoin.io/ballot/lib/ballot"
	"boscoin.io/ballot/lib/contract/value"
	"boscoin.io/ballot/lib/errors"
	"boscoin.io/ballot/lib/ledger"
)

const JSONRPCServiceName = "Ballot"

type ReadArgs struct {
	Contract string   `json:"contract"`
	Method   string   `json:"method"`
	Args     []string `json:"args"`
}

type ContractArgs struct {
	Contract string `json:"contract"`
}

type ProposalArgs struct {
	Contract string `json:"contract"`
	Index    uint64 `json:"index"`
}

type VoterArgs struct {
	Contract string `json:"contract"`
	Address  string `json:"address"`
}

type ProposalsResult []ballot.Proposal

type ChairpersonResult string

// jsonrpcBallotApp serves the read views of the ledger. The error of the
// response is the json of `*errors.Error`, if the view fails by the known
// error.
type jsonrpcBallotApp struct {
	l ledger.Ledger
}

func (j *jsonrpcBallotApp) Read(r *http.Request, args *ReadArgs, result *value.Value) error {
	v, err := j.l.Read(r.Context(), args.Contract, args.Method, args.Args...)
	if err != nil {
		return rpcError(err)
	}

	*result = *v
	return nil
}

func (j *jsonrpcBallotApp) Proposal(r *http.Request, args *ProposalArgs, result *ballot.Proposal) (err error) {
	*result, err = ledger.NewBallotView(j.l, args.Contract).Proposal(r.Context(), args.Index)
	return rpcError(err)
}

func (j *jsonrpcBallotApp) Proposals(r *http.Request, args *ContractArgs, result *ProposalsResult) error {
	proposals, err := ledger.NewBallotView(j.l, args.Contract).Proposals(r.Context())
	if err != nil {
		return rpcError(err)
	}

	*result = ProposalsResult(proposals)
	return nil
}

func (j *jsonrpcBallotApp) Voter(r *http.Request, args *VoterArgs, result *ballot.Voter) (err error) {
	*result, err = ledger.NewBallotView(j.l, args.Contract).Voter(r.Context(), args.Address)
	return rpcError(err)
}

func (j *jsonrpcBallotApp) Winner(r *http.Request, args *ContractArgs, result *ballot.Proposal) (err error) {
	*result, err = ledger.NewBallotView(j.l, args.Contract).Winner(r.Context())
	return rpcError(err)
}

func (j *jsonrpcBallotApp) Chairperson(r *http.Request, args *ContractArgs, result *ChairpersonResult) error {
	address, err := ledger.NewBallotView(j.l, args.Contract).Chairperson(r.Context())
	if err != nil {
		return rpcError(err)
	}

	*result = ChairpersonResult(address)
	return nil
}

// rpcError unwraps the known error, so the client can decode it.
func rpcError(err error) error {
	if err == nil {
		return nil
	}
	if e, ok := errors.Cause(err); ok {
		return e
	}

	return err
}

type JSONRPCServer struct {
	*rpc.Server
}

func NewJSONRPCServer(l ledger.Ledger) *JSONRPCServer {
	s := &JSONRPCServer{Server: rpc.NewServer()}
	s.RegisterCodec(jsonrpc.NewCodec(), "application/json")
	s.RegisterCodec(jsonrpc.NewCodec(), "application/json;charset=UTF-8")

	if err := s.RegisterService(&jsonrpcBallotApp{l: l}, JSONRPCServiceName); err != nil {
		panic(err)
	}

	return s
}

func (s *JSONRPCServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set(
		"Access-Control-Allow-Headers",
		"Accept, Content-Type, Content-Length, Accept-Encoding",
	)

	if r.Method == http.MethodOptions {
		return
	}

	s.Server.ServeHTTP(w, r)
}
