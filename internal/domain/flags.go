package domain

// Flags is the fixed set of amenity attributes tracked per loo.
// Each flag is tri-state: nil means "unknown / never reported", which is the
// state of every flag on a record created without that attribute. Only an
// explicit true contributes to the dump bitmask.
type Flags struct {
	Accessible *bool `json:"accessible"`
	NoPayment  *bool `json:"noPayment"`
	AllGender  *bool `json:"allGender"`
	BabyChange *bool `json:"babyChange"`
	Men        *bool `json:"men"`
	Women      *bool `json:"women"`
	Children   *bool `json:"children"`
	UrinalOnly *bool `json:"urinalOnly"`
	Automatic  *bool `json:"automatic"`
	Attended   *bool `json:"attended"`
	RadarKey   *bool `json:"radarKey"`
}

// Bit weights for the dump bitmask. This table is part of the public wire
// format of GET /loos/dump: weights are assigned once and never reused or
// repacked, even when a flag is retired.
//
// Weight 4 is reserved for a flag that is not surfaced in the dump
// projection. The gap is intentional; do not reassign it.
const (
	WeightNoPayment  uint32 = 1
	WeightAllGender  uint32 = 2
	WeightAccessible uint32 = 8
	WeightBabyChange uint32 = 16
	WeightRadarKey   uint32 = 32
	WeightAutomatic  uint32 = 64
	WeightAttended   uint32 = 128
	WeightMen        uint32 = 256
	WeightWomen      uint32 = 512
	WeightChildren   uint32 = 1024
	WeightUrinalOnly uint32 = 2048
)

// EncodeFlags packs the amenity flags into a single bitmask.
// A flag contributes its weight iff it is explicitly true; false and unknown
// flags contribute nothing. Pure function, no side effects.
func EncodeFlags(f Flags) uint32 {
	var mask uint32
	add := func(v *bool, weight uint32) {
		if v != nil && *v {
			mask |= weight
		}
	}
	add(f.NoPayment, WeightNoPayment)
	add(f.AllGender, WeightAllGender)
	add(f.Accessible, WeightAccessible)
	add(f.BabyChange, WeightBabyChange)
	add(f.RadarKey, WeightRadarKey)
	add(f.Automatic, WeightAutomatic)
	add(f.Attended, WeightAttended)
	add(f.Men, WeightMen)
	add(f.Women, WeightWomen)
	add(f.Children, WeightChildren)
	add(f.UrinalOnly, WeightUrinalOnly)
	return mask
}

// DecodeFlags unpacks a bitmask into amenity flags.
// Every tracked flag comes back explicitly true or false (mask&weight != 0);
// untracked bits, including the reserved weight 4, are ignored, never
// inferred into a flag. Inverse of EncodeFlags for explicitly-set flags.
func DecodeFlags(mask uint32) Flags {
	bit := func(weight uint32) *bool {
		v := mask&weight != 0
		return &v
	}
	return Flags{
		NoPayment:  bit(WeightNoPayment),
		AllGender:  bit(WeightAllGender),
		Accessible: bit(WeightAccessible),
		BabyChange: bit(WeightBabyChange),
		RadarKey:   bit(WeightRadarKey),
		Automatic:  bit(WeightAutomatic),
		Attended:   bit(WeightAttended),
		Men:        bit(WeightMen),
		Women:      bit(WeightWomen),
		Children:   bit(WeightChildren),
		UrinalOnly: bit(WeightUrinalOnly),
	}
}
