package errors

// ballot engine
var (
	ErrorUnauthorized         = register(100, "Only chairperson can give right to vote.")
	ErrorAlreadyVoted         = register(101, "Already voted.")
	ErrorAlreadyEnfranchised  = register(102, "The voter already has the right to vote.")
	ErrorNoRight              = register(103, "Has no right to vote")
	ErrorInvalidProposal      = register(104, "Invalid proposal index")
	ErrorSelfDelegation       = register(105, "Self-delegation is disallowed.")
	ErrorDelegationLoop       = register(106, "Found loop in delegation")
	ErrorInvalidConfiguration = register(107, "At least one proposal must be given")
	ErrorDelegateHasNoRight   = register(108, "Delegate has no right to vote")
	ErrorBallotNotFound       = register(109, "ballot does not exist")
	ErrorVoterNotFound        = register(110, "voter does not exist")
)

// storage
var (
	ErrorStorageRecordAlreadyExists = register(200, "record already exists in storage")
	ErrorStorageRecordDoesNotExist  = register(201, "record does not exist in storage")
	ErrorStorageCoreError           = register(202, "storage error")
	ErrorStorageConfigError         = register(203, "invalid storage config")
)

// ledger
var (
	ErrorInvalidAddress              = register(300, "invalid address")
	ErrorAccountNotFound             = register(301, "account does not exist")
	ErrorAccountAlreadyExists        = register(302, "account already exists")
	ErrorInsufficientBalance         = register(303, "insufficient balance")
	ErrorInvalidFee                  = register(304, "invalid fee")
	ErrorInvalidSequenceID           = register(305, "invalid sequence id")
	ErrorSignatureVerificationFailed = register(306, "signature verification failed")
	ErrorInvalidHash                 = register(307, "hash does not match")
	ErrorInvalidOperation            = register(308, "invalid operation")
	ErrorTransactionEmptyOperations  = register(309, "transaction has no operations")
	ErrorTransactionNotFound         = register(310, "transaction does not exist")
	ErrorTransactionAlreadyExists    = register(311, "transaction already submitted")
	ErrorLedgerClosed                = register(312, "ledger is closed")
	ErrorLedgerQueueFull             = register(313, "ledger queue is full")
	ErrorInvalidAmount               = register(314, "invalid amount")
	ErrorAmountOverflow              = register(315, "amount overflow")
	ErrorAmountUnderflow             = register(316, "amount underflow")
	ErrorInvalidTransaction          = register(317, "invalid transaction")
	ErrorNotEnoughBalance            = register(318, "Not enough balance")
	ErrorTransactionSameSource       = register(319, "transaction from the same source is already pending")
)

// contract
var (
	ErrorContractNotFound       = register(400, "contract does not exist")
	ErrorContractAlreadyExists  = register(401, "contract already exists")
	ErrorContractMethodNotFound = register(402, "contract method not found")
	ErrorContractUnknownCode    = register(403, "unknown contract code")
	ErrorContractInvalidArgs    = register(404, "invalid contract arguments")
	ErrorContractUnknownType    = register(405, "unknown contract code type")
)

// network
var (
	ErrorHTTPProblem         = register(500, "http problem")
	ErrorHTTPServerError     = register(501, "http server error")
	ErrorBadRequestParameter = register(502, "bad request parameter")
	ErrorTooManyRequests     = register(503, "too many requests")
)
