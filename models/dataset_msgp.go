package models

import (
	"github.com/tinylib/msgp/msgp"
)

const (
	keyEncodings = "encodings"
	keyNames     = "names"
)

// MarshalMsg implements msgp.Marshaler. The layout is a two key map:
// {"encodings": [[float32, ...], ...], "names": [string, ...]}
func (d *Dataset) MarshalMsg(b []byte) (o []byte, err error) {
	if err = d.Validate(); err != nil {
		return b, err
	}
	o = msgp.Require(b, d.Msgsize())
	o = msgp.AppendMapHeader(o, 2)
	o = msgp.AppendString(o, keyEncodings)
	o = msgp.AppendArrayHeader(o, uint32(len(d.Encodings)))
	for _, enc := range d.Encodings {
		o = msgp.AppendArrayHeader(o, uint32(len(enc)))
		for _, v := range enc {
			o = msgp.AppendFloat32(o, v)
		}
	}
	o = msgp.AppendString(o, keyNames)
	o = msgp.AppendArrayHeader(o, uint32(len(d.Names)))
	for _, name := range d.Names {
		o = msgp.AppendString(o, name)
	}
	return
}

// UnmarshalMsg implements msgp.Unmarshaler. Unknown keys are skipped.
func (d *Dataset) UnmarshalMsg(bts []byte) (o []byte, err error) {
	var fields uint32
	fields, bts, err = msgp.ReadMapHeaderBytes(bts)
	if err != nil {
		err = msgp.WrapError(err)
		return
	}
	encodings := []Encoding{}
	names := []string{}
	for fields > 0 {
		fields--
		var key []byte
		key, bts, err = msgp.ReadMapKeyZC(bts)
		if err != nil {
			err = msgp.WrapError(err)
			return
		}
		switch msgp.UnsafeString(key) {
		case keyEncodings:
			var count uint32
			count, bts, err = msgp.ReadArrayHeaderBytes(bts)
			if err != nil {
				err = msgp.WrapError(err, "Encodings")
				return
			}
			// every element takes at least one byte
			if count > uint32(len(bts)) {
				err = msgp.WrapError(msgp.ErrShortBytes, "Encodings")
				return
			}
			encodings = make([]Encoding, count)
			for i := range encodings {
				var size uint32
				size, bts, err = msgp.ReadArrayHeaderBytes(bts)
				if err != nil {
					err = msgp.WrapError(err, "Encodings", i)
					return
				}
				if size > uint32(len(bts)) {
					err = msgp.WrapError(msgp.ErrShortBytes, "Encodings", i)
					return
				}
				enc := make(Encoding, size)
				for j := range enc {
					enc[j], bts, err = msgp.ReadFloat32Bytes(bts)
					if err != nil {
						err = msgp.WrapError(err, "Encodings", i, j)
						return
					}
				}
				encodings[i] = enc
			}
		case keyNames:
			var count uint32
			count, bts, err = msgp.ReadArrayHeaderBytes(bts)
			if err != nil {
				err = msgp.WrapError(err, "Names")
				return
			}
			if count > uint32(len(bts)) {
				err = msgp.WrapError(msgp.ErrShortBytes, "Names")
				return
			}
			names = make([]string, count)
			for i := range names {
				names[i], bts, err = msgp.ReadStringBytes(bts)
				if err != nil {
					err = msgp.WrapError(err, "Names", i)
					return
				}
			}
		default:
			bts, err = msgp.Skip(bts)
			if err != nil {
				err = msgp.WrapError(err)
				return
			}
		}
	}
	if len(encodings) != len(names) {
		err = ErrMisaligned
		return
	}
	d.Encodings = encodings
	d.Names = names
	o = bts
	return
}

// Msgsize returns an upper bound estimate of the number of bytes MarshalMsg needs
func (d *Dataset) Msgsize() (s int) {
	s = msgp.MapHeaderSize + msgp.StringPrefixSize + len(keyEncodings) + msgp.ArrayHeaderSize
	for _, enc := range d.Encodings {
		s += msgp.ArrayHeaderSize + len(enc)*msgp.Float32Size
	}
	s += msgp.StringPrefixSize + len(keyNames) + msgp.ArrayHeaderSize
	for _, name := range d.Names {
		s += msgp.StringPrefixSize + len(name)
	}
	return
}
