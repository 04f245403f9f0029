// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the run lifecycle: loading a plan, choosing
// an executor, serving health and metrics, and printing the report. It is
// decoupled from any specific entrypoint like a CLI.
package app
