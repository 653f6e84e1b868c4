package common

// GetAccountFromArgs extracts the Mail account name from request arguments.
// Returns the empty string when no account was provided, which the mail
// layer treats as "all accounts".
func GetAccountFromArgs(args map[string]interface{}) string {
	if accountVal, ok := args["account"].(string); ok {
		return accountVal
	}
	return ""
}
