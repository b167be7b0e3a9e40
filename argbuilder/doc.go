// Package argbuilder is the parser-builder contract that generated code
// targets. A runtime argument parser implements Factory, Command and Arg;
// generated builder functions only call these methods.
//
// Recorder is an implementation that records every call, for tests and
// for inspecting what a generated builder does.
package argbuilder
