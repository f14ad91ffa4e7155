package sieve

import "fmt"

// TestDoc returns hover/completion documentation for a test command.
func TestDoc(test string) string {
	switch test {
	case "address":
		return "Tests email addresses in headers like From, To, Cc, Bcc"
	case "allof":
		return "Logical AND operator - all contained tests must be true"
	case "anyof":
		return "Logical OR operator - any contained test can be true"
	case "envelope":
		return "Tests SMTP envelope information (MAIL FROM, RCPT TO)"
	case "exists":
		return "Tests whether specified header fields exist in the message"
	case "header":
		return "Tests the contents of specified header fields"
	case "size":
		return "Tests the size of the message in bytes"
	case "body":
		return "Tests the body content of the message (requires 'body' extension)"
	case "currentdate":
		return "Tests the current date/time on the server (Proton extension)"
	case "regex":
		return "Provides regular expression matching (requires 'regex' extension)"
	default:
		return fmt.Sprintf("Sieve test command: %s", test)
	}
}

// ActionDoc returns hover/completion documentation for an action command.
func ActionDoc(action string) string {
	switch action {
	case "fileinto":
		return "Files the message into the specified mailbox/folder"
	case "redirect":
		return "Redirects the message to the specified email address"
	case "reject":
		return "Rejects the message with an error sent back to sender"
	case "discard":
		return "Silently discards the message (no error sent)"
	case "keep":
		return "Keeps the message in the default location (usually INBOX)"
	case "stop":
		return "Stops processing the current script"
	case "vacation":
		return "Sends an auto-reply message (requires 'vacation' extension)"
	case "expire":
		return "Sets message expiration time (Proton extension)"
	default:
		return fmt.Sprintf("Sieve action command: %s", action)
	}
}

// TagDoc returns hover/completion documentation for a tagged argument.
func TagDoc(tag string) string {
	switch tag {
	case ":is":
		return "Exact string match (case-insensitive by default)"
	case ":contains":
		return "Substring match - tests if the string contains the specified text"
	case ":matches":
		return "Wildcard pattern match using * and ? characters"
	case ":regex":
		return "Regular expression match (requires 'regex' extension)"
	case ":over":
		return "Size comparison - tests if size is greater than specified value"
	case ":under":
		return "Size comparison - tests if size is less than specified value"
	case ":copy":
		return "Copy the message instead of moving it (preserves original)"
	case ":zone":
		return "Specifies timezone for date operations"
	default:
		return fmt.Sprintf("Sieve tag parameter: %s", tag)
	}
}
