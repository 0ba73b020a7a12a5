package promise

// CallbackFunc follows the trailing-callback convention: the function does
// its work and reports completion exactly once through callback, with a
// non-nil err or a result.
type CallbackFunc func(args []interface{}, callback func(err error, result interface{}))

// Promisify converts a callback-style function into one returning a promise:
// a non-nil callback error rejects it, otherwise it resolves with the result.
func Promisify(fn CallbackFunc) func(args ...interface{}) *Promise {
	return func(args ...interface{}) *Promise {
		return New(func(resolve Resolver, reject Rejector) {
			fn(args, func(err error, result interface{}) {
				if nil != err {
					reject(err)
				} else {
					resolve(result)
				}
			})
		})
	}
}
