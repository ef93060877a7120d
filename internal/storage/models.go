package storage

import "time"

// DispatchRecord is one audited chat exchange. Message and Response hold
// either plaintext or an encryption envelope, flagged by Encrypted.
type DispatchRecord struct {
	ID           int64
	EventID      string
	Agent        string
	Provider     string
	Language     string
	Message      string
	Response     string
	Encrypted    bool
	WarningsJSON string
	LatencyMS    int64
	CreatedAt    time.Time
}

type ProviderStat struct {
	Provider   string
	Dispatches int64
}

type AgentStat struct {
	Agent      string
	Dispatches int64
}
