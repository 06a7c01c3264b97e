// Package rulesbot provides the documentation search and repository
// reference resolution behind a group-chat help bot. It ranks free-text
// queries against a Sphinx symbol inventory and turns issue, pull request
// and commit mentions in message text into titled links.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sphinx/, goquery/, edlib/).
package rulesbot
