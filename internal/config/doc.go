// Package config provides the YAML configuration file of the unify tool.
//
// # Schema
//
//	version: "1"
//	data_dir: .
//	documents:
//	  nested: data-1.json
//	  flattened: data-2.json
//	  target: data-result.json
//	output_dir: out
//	compress: false
//	workers: 4
//	log:
//	  level: info    # debug | info | warn | error
//	  format: text   # text | json
//
// Every field is optional; Parse fills in the defaults above.
package config
