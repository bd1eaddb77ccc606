// Package decoders provides implementations of the Decoder interface
// for the registry fragment formats rustdoc has shipped over time.
// Each decoder knows how to parse one flavor without executing any
// JavaScript.
//
// Decoders are registered with the DecoderRegistry at startup.
package decoders
