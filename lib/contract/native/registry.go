package native

var (
	contracts = make(map[string]Register)
)

type (
	Register func(executor *NativeExecutor)
)

// AddContract registers the native contract under the code name, which is
// the `Code` of the deploy payload.
func AddContract(code string, r Register) {
	contracts[code] = r
}

func HasContract(code string) bool {
	_, ok := contracts[code]
	return ok
}

func Contracts() (codes []string) {
	for code := range contracts {
		codes = append(codes, code)
	}
	return
}
