package cloudvolume

import (
	"fmt"

	"github.com/cajal/microns-kit/internal/core/domain"
)

// Scale is one mip level of a precomputed volume manifest.
type Scale struct {
	// Key names the scale directory, conventionally the resolution.
	Key string `json:"key"`

	// Resolution is the voxel size in nanometers per axis.
	Resolution [3]float64 `json:"resolution"`

	// Size is the extent of the volume in voxels per axis.
	Size [3]int64 `json:"size"`

	// VoxelOffset is the origin of the bounding box in voxels.
	VoxelOffset [3]int64 `json:"voxel_offset"`

	// Encoding is the chunk encoding, e.g. "raw" or "compressed_segmentation".
	Encoding string `json:"encoding"`
}

// Info is the precomputed info manifest of a volume.
type Info struct {
	// Type is the volume type, "image" or "segmentation".
	Type string `json:"type"`

	// DataType is the voxel data type, e.g. "uint8".
	DataType string `json:"data_type"`

	// NumChannels is the number of channels per voxel.
	NumChannels int `json:"num_channels"`

	// Scales lists the available mip levels, finest first.
	Scales []Scale `json:"scales"`
}

// MipStats summarizes the bounding box of one mip level.
type MipStats struct {
	// Mip is the mip level, 0 being the finest.
	Mip int

	// Resolution is the voxel size in nanometers per axis.
	Resolution [3]float64

	// MinPt is the minimum point of the bounding box in voxels.
	MinPt [3]int64

	// MaxPt is the maximum point of the bounding box in voxels.
	MaxPt [3]int64

	// CtrPt is the center of the bounding box in voxels.
	CtrPt [3]float64

	// VoxelOffset is the origin of the bounding box in voxels.
	VoxelOffset [3]int64
}

// Mips returns the available mip levels.
func (i *Info) Mips() []int {
	mips := make([]int, len(i.Scales))
	for m := range mips {
		mips[m] = m
	}
	return mips
}

// Stats computes the bounding box statistics for a mip level.
func (i *Info) Stats(mip int) (MipStats, error) {
	if mip < 0 || mip >= len(i.Scales) {
		return MipStats{}, fmt.Errorf("%w: mip %d out of range [0, %d)",
			domain.ErrInvalidInput, mip, len(i.Scales))
	}

	scale := i.Scales[mip]
	stats := MipStats{
		Mip:         mip,
		Resolution:  scale.Resolution,
		MinPt:       scale.VoxelOffset,
		VoxelOffset: scale.VoxelOffset,
	}
	for axis := 0; axis < 3; axis++ {
		stats.MaxPt[axis] = scale.VoxelOffset[axis] + scale.Size[axis]
		stats.CtrPt[axis] = float64(stats.MaxPt[axis]-stats.MinPt[axis])/2 + float64(stats.MinPt[axis])
	}
	return stats, nil
}

// AllStats computes bounding box statistics for every mip level.
func (i *Info) AllStats() []MipStats {
	stats := make([]MipStats, 0, len(i.Scales))
	for _, mip := range i.Mips() {
		s, err := i.Stats(mip)
		if err != nil {
			continue
		}
		stats = append(stats, s)
	}
	return stats
}
