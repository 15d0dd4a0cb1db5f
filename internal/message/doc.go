// Package message encodes and decodes HDF5 object header messages.
//
// An object header is a sequence of typed messages. This package handles
// the messages needed to describe groups, datasets and their attributes:
//
//   - Dataspace (0x0001): dimensions of a dataset or attribute. See [Dataspace].
//   - Link Info (0x0002): marks a group using compact link storage. See [LinkInfo].
//   - Datatype (0x0003): element type. See [Datatype].
//   - Link (0x0006): a named hard or soft link to another object. See [Link].
//   - Data Layout (0x0008): where dataset bytes live. See [DataLayout].
//   - Group Info (0x000A): group storage hints. See [GroupInfo].
//   - Attribute (0x000C): a small named value attached to an object. See [Attribute].
//   - Continuation (0x0010): points to another chunk of header messages. See [Continuation].
//
// Any other message is returned as [Unknown] and kept verbatim, so an object
// can be rewritten without losing metadata this package does not model.
//
// Messages are parsed with [Parse] and encoded through the [Encodable]
// interface onto a [binary.Encoder].
package message
