package session

import (
	"encoding/json"
	"errors"
)

// Codec serializes session data into the string stored in the data field.
type Codec[Data any] interface {
	Encode(data Data) (string, error)
	Decode(raw string) (Data, error)
}

// JSONCodec is the default codec. It stores session data as JSON text.
type JSONCodec[Data any] struct{}

// Encode marshals data to JSON.
func (JSONCodec[Data]) Encode(data Data) (string, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return "", errors.Join(ErrEncode, err)
	}
	return string(b), nil
}

// Decode unmarshals JSON text into a new Data value.
func (JSONCodec[Data]) Decode(raw string) (Data, error) {
	var data Data
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return data, errors.Join(ErrDecode, err)
	}
	return data, nil
}

// CodecFuncs adapts a plain serialize/deserialize function pair to Codec.
// Errors returned by the functions are joined with ErrEncode or ErrDecode.
type CodecFuncs[Data any] struct {
	EncodeFunc func(Data) (string, error)
	DecodeFunc func(string) (Data, error)
}

// Encode calls EncodeFunc.
func (c CodecFuncs[Data]) Encode(data Data) (string, error) {
	if c.EncodeFunc == nil {
		return "", errors.Join(ErrEncode, ErrNilCodec)
	}
	s, err := c.EncodeFunc(data)
	if err != nil {
		return "", errors.Join(ErrEncode, err)
	}
	return s, nil
}

// Decode calls DecodeFunc.
func (c CodecFuncs[Data]) Decode(raw string) (Data, error) {
	if c.DecodeFunc == nil {
		var zero Data
		return zero, errors.Join(ErrDecode, ErrNilCodec)
	}
	data, err := c.DecodeFunc(raw)
	if err != nil {
		return data, errors.Join(ErrDecode, err)
	}
	return data, nil
}
