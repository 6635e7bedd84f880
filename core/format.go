// Package core: tensor format and element-type enumerations.
//
// A Format names the physical memory arrangement of a tensor; the reorder
// pass treats formats as opaque tags and consults the layout advisor for
// every semantic question (support, fusibility). Only two structural
// predicates live here: IsAny and IsImage.

package core

// Format identifies a physical tensor memory arrangement.
type Format uint8

// Format tags. FormatAny is the distinguished "unconstrained / to be
// decided" value; every other tag names a concrete arrangement.
const (
	FormatAny Format = iota
	FormatBfyx
	FormatByxf
	FormatYxfb
	FormatFyxb
	FormatBFsYxFsv4
	FormatBFsYxFsv16
	FormatBFsYxFsv32
	FormatBFsZyxFsv16
	FormatBFsZyxFsv32
	FormatFsBYxFsv32
	FormatByxfAf32
	FormatBsFsZyxBsv16Fsv16
	FormatBin
	FormatImageBfyx
	FormatImage2DWeightsC4FyxB
)

// formatNames maps each Format to its canonical lowercase tag.
var formatNames = map[Format]string{
	FormatAny:                  "any",
	FormatBfyx:                 "bfyx",
	FormatByxf:                 "byxf",
	FormatYxfb:                 "yxfb",
	FormatFyxb:                 "fyxb",
	FormatBFsYxFsv4:            "b_fs_yx_fsv4",
	FormatBFsYxFsv16:           "b_fs_yx_fsv16",
	FormatBFsYxFsv32:           "b_fs_yx_fsv32",
	FormatBFsZyxFsv16:          "b_fs_zyx_fsv16",
	FormatBFsZyxFsv32:          "b_fs_zyx_fsv32",
	FormatFsBYxFsv32:           "fs_b_yx_fsv32",
	FormatByxfAf32:             "byxf_af32",
	FormatBsFsZyxBsv16Fsv16:    "bs_fs_zyx_bsv16_fsv16",
	FormatBin:                  "bin",
	FormatImageBfyx:            "image_bfyx",
	FormatImage2DWeightsC4FyxB: "image_2d_weights_c4_fyx_b",
}

// String returns the canonical lowercase tag for f.
func (f Format) String() string {
	if s, ok := formatNames[f]; ok {
		return s
	}

	return "unknown"
}

// IsAny reports whether f is the unconstrained placeholder.
func (f Format) IsAny() bool { return f == FormatAny }

// IsImage reports whether f is one of the image arrangements.
// Image formats are handled by the runtime directly and are skipped
// by reorder materialization.
func (f Format) IsImage() bool {
	return f == FormatImageBfyx || f == FormatImage2DWeightsC4FyxB
}

// DataType identifies the element type of a tensor.
type DataType uint8

// Element types.
const (
	TypeF32 DataType = iota
	TypeF16
	TypeI8
	TypeU8
	TypeI32
	TypeBin
)

// typeNames maps each DataType to its canonical lowercase tag.
var typeNames = map[DataType]string{
	TypeF32: "f32",
	TypeF16: "f16",
	TypeI8:  "i8",
	TypeU8:  "u8",
	TypeI32: "i32",
	TypeBin: "bin",
}

// String returns the canonical lowercase tag for t.
func (t DataType) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}

	return "unknown"
}
