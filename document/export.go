// Copyright 2023-2026 The Prim Language Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package document

import (
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// AsStruct returns the document's entries as a google.protobuf.Struct.
// Struct values are JSON numbers, so both int and float entries become
// float64 and integers of very large magnitude lose precision. If the
// document holds several entries with the same name, the last one wins.
func (d *Document) AsStruct() *structpb.Struct {
	fields := make(map[string]*structpb.Value, len(d.Entries))
	for _, e := range d.Entries {
		fields[e.Name] = structpb.NewNumberValue(e.AsFloat())
	}
	return &structpb.Struct{Fields: fields}
}

// MarshalJSON implements json.Marshaler, rendering the document the way
// protojson renders its Struct form. Note that protojson output is not
// byte-stable across library versions.
func (d *Document) MarshalJSON() ([]byte, error) {
	return protojson.Marshal(d.AsStruct())
}

// AsStruct returns the set's winning entries as a
// google.protobuf.Struct, with the same value conversions as
// Document.AsStruct.
func (s *Set) AsStruct() *structpb.Struct {
	fields := make(map[string]*structpb.Value, s.Len())
	s.tree.Scan(func(name string, res *Resolution) bool {
		fields[name] = structpb.NewNumberValue(res.Entry.AsFloat())
		return true
	})
	return &structpb.Struct{Fields: fields}
}

// MarshalJSON implements json.Marshaler for the set's merged view.
func (s *Set) MarshalJSON() ([]byte, error) {
	return protojson.Marshal(s.AsStruct())
}
