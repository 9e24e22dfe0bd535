package core

import (
	"time"

	"github.com/mus-format/mus-go"
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// MUS serializers for the stored record types. Written by hand against the
// mus-go primitives; fields are encoded in declaration order, so reordering
// Package fields is a breaking format change.
var (
	IDMUS      = idMUS{}
	PackageMUS = packageMUS{}

	detailsMUS = ord.NewMapSer[string, string](ord.String, ord.String)
	vectorMUS  = ord.NewSliceSer[float32](varint.Float32)
)

var (
	_ mus.Serializer[ID]      = IDMUS
	_ mus.Serializer[Package] = PackageMUS
)

type idMUS struct{}

func (idMUS) Marshal(id ID, bs []byte) int {
	return varint.Uint64.Marshal(uint64(id), bs)
}

func (idMUS) Unmarshal(bs []byte) (ID, int, error) {
	v, n, err := varint.Uint64.Unmarshal(bs)
	return ID(v), n, err
}

func (idMUS) Size(id ID) int {
	return varint.Uint64.Size(uint64(id))
}

func (idMUS) Skip(bs []byte) (int, error) {
	return varint.Uint64.Skip(bs)
}

type packageMUS struct{}

func (packageMUS) Marshal(p Package, bs []byte) (n int) {
	n = IDMUS.Marshal(p.Id, bs)
	n += ord.String.Marshal(p.Name, bs[n:])
	n += ord.String.Marshal(p.Description, bs[n:])
	n += ord.String.Marshal(p.SearchText, bs[n:])
	n += ord.String.Marshal(p.Location, bs[n:])
	n += varint.Float64.Marshal(p.PriceMin, bs[n:])
	n += varint.Float64.Marshal(p.PriceMax, bs[n:])
	n += varint.Int.Marshal(p.Capacity, bs[n:])
	n += detailsMUS.Marshal(p.VenueDetails, bs[n:])
	n += detailsMUS.Marshal(p.CateringDetails, bs[n:])
	n += detailsMUS.Marshal(p.EntertainmentDetails, bs[n:])
	n += vectorMUS.Marshal(p.Vector, bs[n:])
	n += varint.Int64.Marshal(p.InsertedAt.UnixMicro(), bs[n:])
	n += varint.Int64.Marshal(p.UpdatedAt.UnixMicro(), bs[n:])
	return n
}

func (packageMUS) Unmarshal(bs []byte) (p Package, n int, err error) {
	var n1 int
	p.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	if p.Name, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return p, n + n1, err
	}
	n += n1
	if p.Description, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return p, n + n1, err
	}
	n += n1
	if p.SearchText, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return p, n + n1, err
	}
	n += n1
	if p.Location, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return p, n + n1, err
	}
	n += n1
	if p.PriceMin, n1, err = varint.Float64.Unmarshal(bs[n:]); err != nil {
		return p, n + n1, err
	}
	n += n1
	if p.PriceMax, n1, err = varint.Float64.Unmarshal(bs[n:]); err != nil {
		return p, n + n1, err
	}
	n += n1
	if p.Capacity, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return p, n + n1, err
	}
	n += n1
	if p.VenueDetails, n1, err = detailsMUS.Unmarshal(bs[n:]); err != nil {
		return p, n + n1, err
	}
	n += n1
	if p.CateringDetails, n1, err = detailsMUS.Unmarshal(bs[n:]); err != nil {
		return p, n + n1, err
	}
	n += n1
	if p.EntertainmentDetails, n1, err = detailsMUS.Unmarshal(bs[n:]); err != nil {
		return p, n + n1, err
	}
	n += n1
	if p.Vector, n1, err = vectorMUS.Unmarshal(bs[n:]); err != nil {
		return p, n + n1, err
	}
	n += n1

	var micros int64
	if micros, n1, err = varint.Int64.Unmarshal(bs[n:]); err != nil {
		return p, n + n1, err
	}
	n += n1
	p.InsertedAt = time.UnixMicro(micros).UTC()
	if micros, n1, err = varint.Int64.Unmarshal(bs[n:]); err != nil {
		return p, n + n1, err
	}
	n += n1
	p.UpdatedAt = time.UnixMicro(micros).UTC()

	return p, n, nil
}

func (packageMUS) Size(p Package) (size int) {
	size = IDMUS.Size(p.Id)
	size += ord.String.Size(p.Name)
	size += ord.String.Size(p.Description)
	size += ord.String.Size(p.SearchText)
	size += ord.String.Size(p.Location)
	size += varint.Float64.Size(p.PriceMin)
	size += varint.Float64.Size(p.PriceMax)
	size += varint.Int.Size(p.Capacity)
	size += detailsMUS.Size(p.VenueDetails)
	size += detailsMUS.Size(p.CateringDetails)
	size += detailsMUS.Size(p.EntertainmentDetails)
	size += vectorMUS.Size(p.Vector)
	size += varint.Int64.Size(p.InsertedAt.UnixMicro())
	size += varint.Int64.Size(p.UpdatedAt.UnixMicro())
	return size
}

func (s packageMUS) Skip(bs []byte) (n int, err error) {
	_, n, err = s.Unmarshal(bs)
	return n, err
}
