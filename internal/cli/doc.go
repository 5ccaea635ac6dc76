// Package cli provides the interactive shopkeeper command-line tool.
//
// App wires the services over one database connection and runs a blocking
// REPL on the given input. Commands take their arguments inline
// ("product 42", "addtocart 42 3") or prompt for missing ones. Some commands
// act on the logged-in user (cart, checkout, addresses, reviews); the rest
// manage the catalog and orders directly. "sql" and "exec" pass raw
// statements to the connection for ad-hoc inspection.
//
// Diagnostics go to the structured log; the terminal only shows results and
// short error lines.
package cli
