// Package types defines the public data model shared by the VDF codecs:
// the KeyValue tree (Node, Map, Text, UInt32), typed errors, and option
// structs. It also converts trees to and from the transport formats callers
// hand to other layers (JSON, YAML, MessagePack).
//
// Keeping these types in a leaf package lets internal decoders, the public
// vdf package and the CLI agree on one tree shape without import cycles.
package types
