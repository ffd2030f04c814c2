package models

// ConnectionStatus is the bounded result of probing the account store.
//
// Connected reports whether a store handle exists at all; OK reports whether
// the store answered a listing request. Detail carries the failure text when
// OK is false.
type ConnectionStatus struct {
	Backend      string
	DatabaseName string
	Connected    bool
	OK           bool
	Collections  []string
	Detail       string
}
