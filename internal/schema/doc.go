// Package schema defines the structural description of an argument schema and
// its YAML document form.
//
// A Set holds the items of one compilation: the root item plus every item it
// references. An item is either an options bag (struct-like, arguments only)
// or a command set (enum-like, one subcommand per member).
//
// # Document Overview
//
//	version: "1"
//	root: MakeCookie
//	items:
//	  - name: MakeCookie
//	    kind: options
//	    attrs: {name: make-cookie}
//	    members:
//	      - name: supervising_faerie
//	        type: string
//	        attrs: {name: supervisor, long: supervisor, default_value: Puck}
//	      - name: tree
//	        type: "*string"
//	        doc: The faerie tree this cookie is being made in.
//	      - name: cmd
//	        type: Command
//	        attrs: subcommand
//	  - name: Command
//	    kind: commands
//	    members:
//	      - name: Pound
//	        doc: Pound acorns into flour for cookie dough.
//	        fields:
//	          - name: acorns
//	            type: uint32
//
// attrs accepts an ordered mapping, a list mixing single-key mappings and
// attribute strings, or one attribute string in tag grammar (see package attr).
// doc accepts a string (split on newlines) or a list of lines.
//
// # Type Signatures
//
// Types use Go syntax ("bool", "*string", "[]string", "time.Duration",
// "Option[T]"); Rust-style angle brackets ("Vec<String>") are accepted too.
package schema
