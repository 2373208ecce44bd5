// Package config loads recovery jobs from YAML.
//
// A job file carries the same settings as the recover command line:
//
//	version: "1"
//	mnemonic: "abandon abandon ____ ... about"
//	mode: auto
//	threshold: 70
//	workers: 8
//	start: 0
//	end: 1048576
//	output: found.txt
//	quiet: true
//
// Flags given on the command line override values from the file.
package config
