package world

import "fmt"

// Icon is an immutable point marker produced by world analysis,
// e.g. a village, a stronghold or the spawn point.
type Icon struct {
	coordinates Coordinates
	layerID     int
	name        string
	image       string
}

// NewIcon creates an icon at the given position affiliated with a layer.
// Name and image are optional display metadata.
func NewIcon(coordinates Coordinates, layerID int, name, image string) Icon {
	return Icon{
		coordinates: coordinates,
		layerID:     layerID,
		name:        name,
		image:       image,
	}
}

func (i Icon) Coordinates() Coordinates { return i.coordinates }
func (i Icon) LayerID() int             { return i.layerID }
func (i Icon) Name() string             { return i.name }
func (i Icon) Image() string            { return i.image }

func (i Icon) Equal(o Icon) bool { return i == o }

func (i Icon) String() string {
	if i.name == "" {
		return fmt.Sprintf("icon(layer=%d) at %v", i.layerID, i.coordinates)
	}
	return fmt.Sprintf("%s at %v", i.name, i.coordinates)
}
