// Package cli implements the interactive fintrack terminal client: a small
// REPL over the REST API that keeps the login session in a local sqlite
// database.
//
//	fintrack> login
//	fintrack (alice@example.com)> tx add
//	fintrack (alice@example.com)> tx list this-month
//	fintrack (alice@example.com)> summary last-month
package cli
