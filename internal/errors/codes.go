package errors

// Error codes for the stackcc compiler.
//
// Error code ranges:
// E0001-E0099: Lexical errors
// E0100-E0199: Parser errors
// E0800-E0899: Warning codes

const (
	// E0001: Character that starts no token
	ErrorUnexpectedCharacter = "E0001"

	// E0002: '!' not followed by '='
	ErrorMalformedNotEqual = "E0002"

	// E0003: Integer literal outside the 64-bit signed range
	ErrorIntegerOverflow = "E0003"

	// E0100: Token that matches no alternative at its grammar position
	ErrorUnexpectedToken = "E0100"

	// E0101: Token that cannot start an expression
	ErrorExpectedExpression = "E0101"

	// E0102: Assignment whose left side is not a variable
	ErrorInvalidAssignment = "E0102"

	// E0800: Variable assigned but never read
	WarningUnusedVariable = "E0800"

	// E0801: Variable read but never assigned
	WarningUnassignedVariable = "E0801"

	// E0802: Statement after return
	WarningUnreachableCode = "E0802"
)

// GetErrorDescription returns a human-readable description of the error code
func GetErrorDescription(code string) string {
	switch code {
	case ErrorUnexpectedCharacter:
		return "Source contains a character that does not start any token"
	case ErrorMalformedNotEqual:
		return "'!' is only valid as part of '!='"
	case ErrorIntegerOverflow:
		return "Integer literal does not fit in a 64-bit signed integer"
	case ErrorUnexpectedToken:
		return "Token does not match the grammar at this position"
	case ErrorExpectedExpression:
		return "Expected a number, a variable or a parenthesized expression"
	case ErrorInvalidAssignment:
		return "Left side of an assignment must be a variable"
	case WarningUnusedVariable:
		return "Variable is assigned but its value is never used"
	case WarningUnassignedVariable:
		return "Variable is read but never assigned"
	case WarningUnreachableCode:
		return "Code is unreachable"
	default:
		return "Unknown error code"
	}
}

// IsWarning returns true if the error code represents a warning rather than an error
func IsWarning(code string) bool {
	return code >= "E0800" && code < "E0900"
}

// GetErrorCategory returns the category of the error based on its code
func GetErrorCategory(code string) string {
	switch {
	case code >= "E0001" && code < "E0100":
		return "Lexer"
	case code >= "E0100" && code < "E0200":
		return "Parser"
	case code >= "E0800" && code < "E0900":
		return "Warning"
	default:
		return "Unknown"
	}
}
