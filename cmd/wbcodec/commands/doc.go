// Package commands defines the wbcodec CLI.
//
// Commands
//
//   - validate   Decode one or more documents and report the first violation in each
//   - normalize  Decode a document and write it back in canonical form
//   - watch      Validate documents in a directory whenever they are written
//
// Every command takes a --kind flag naming the top level shape of the
// documents (snak, snaks, reference, claim, claims, term or termlist).
// Settings are read from the file given by --config, or WBCODEC_CONFIG when
// the flag is not set.
package commands
