package schemaprompt

// IssueAt creates an Issue at the given pointer with the provided code and message.
func IssueAt(p Pointer, code, msg string) Issue {
	return Issue{Path: p.String(), Code: code, Message: msg}
}

func singleIssue(code, msg string) Issues { return AppendIssues(nil, Issue{Code: code, Message: msg}) }
