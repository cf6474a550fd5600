package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Lexical
	LexInfo               Code = 1000
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002
	LexBadContinuation    Code = 1003
	LexTokenTooLong       Code = 1005
	LexUnbalancedBracket  Code = 1006

	// Input / output
	IOInfo          Code = 4000
	IOReadFailed    Code = 4001
	IOWriteFailed   Code = 4002
	IONotPython     Code = 4003
	IOPathNotFound  Code = 4004
	IOCacheCorrupt  Code = 4005
	IOFormatterFail Code = 4006

	// Configuration
	CfgInfo        Code = 5000
	CfgBadFile     Code = 5001
	CfgBadValue    Code = 5002
	CfgUnknownKeys Code = 5003

	// Rewrite invariants
	RwInfo          Code = 6000
	RwSpliceOverlap Code = 6001
	RwSpliceRange   Code = 6002
	RwNotEquivalent Code = 6003
)

var codeDescription = map[Code]string{
	UnknownCode:           "Unknown error",
	LexInfo:               "Lexical information",
	LexUnknownChar:        "Unknown character",
	LexUnterminatedString: "Unterminated string literal",
	LexBadContinuation:    "Unexpected character after line continuation",
	LexTokenTooLong:       "Token too long",
	LexUnbalancedBracket:  "Unbalanced bracket",
	IOInfo:                "I/O information",
	IOReadFailed:          "Cannot read file",
	IOWriteFailed:         "Cannot write file",
	IONotPython:           "Not a Python source file",
	IOPathNotFound:        "Path does not exist",
	IOCacheCorrupt:        "Cache file is corrupt",
	IOFormatterFail:       "External formatter failed",
	CfgInfo:               "Configuration information",
	CfgBadFile:            "Cannot parse configuration file",
	CfgBadValue:           "Invalid configuration value",
	CfgUnknownKeys:        "Unknown configuration keys",
	RwInfo:                "Rewrite information",
	RwSpliceOverlap:       "Overlapping token edits",
	RwSpliceRange:         "Token edit out of range",
	RwNotEquivalent:       "Rewrite changed code",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("CFG%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("RW%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
