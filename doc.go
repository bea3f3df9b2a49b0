// Package memsig implements byte-pattern signatures: sequences of known bytes
// interspersed with wildcard positions that match any byte, and a search for
// the first occurrence of such a pattern inside a byte range such as a module
// image.
//
// # Notations
//
// A [Signature] can be built from three notations:
//   - an explicit pattern whose wildcard byte is chosen by the caller ([New])
//   - a pattern with a parallel byte or text mask ([NewMasked], [NewMaskedString])
//   - IDA-style text such as "8B 15 ?? ?? ?? ?? 48 63" ([Parse])
//
// Wildcard positions are stored as a sentinel byte that no literal byte of the
// pattern uses. The sentinel is picked automatically for the masked and text
// notations; when every byte value is already taken by a literal,
// construction fails with [ErrUnresolvableWildcard].
//
// # Searching
//
// [Signature.Find] returns the offset of the first match or len(b) when there
// is none, [Signature.Index] returns -1 instead. An empty Signature never
// matches. A Signature is immutable and safe for concurrent use.
package memsig
