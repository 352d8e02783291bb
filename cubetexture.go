package raster

// CubeTexture is a 6-face cubemap, each face an equal-size square
// Texture. Face selection and per-face UV derivation follow the
// standard OpenGL cubemap conventions documented in §6.
type CubeTexture struct {
	faces [6]*Texture
}

// NewCubeTexture builds a CubeTexture from six faces in Face order
// (PosX, NegX, PosY, NegY, PosZ, NegZ). It returns ErrCubeFaceMismatch
// unless all six faces are square and share the same dimensions.
func NewCubeTexture(posX, negX, posY, negY, posZ, negZ *Texture) (*CubeTexture, error) {
	faces := [6]*Texture{posX, negX, posY, negY, posZ, negZ}
	w, h := faces[0].width, faces[0].height
	if w != h {
		Logger().Warn("raster: cube texture faces must be square", "width", w, "height", h)
		return nil, ErrCubeFaceMismatch
	}
	for _, f := range faces[1:] {
		if f.width != w || f.height != h {
			Logger().Warn("raster: cube texture faces have mismatched dimensions")
			return nil, ErrCubeFaceMismatch
		}
	}
	return &CubeTexture{faces: faces}, nil
}

// Face returns the Texture for the given face.
func (c *CubeTexture) Face(f Face) *Texture { return c.faces[f] }

// Size returns the edge length of each (square) face.
func (c *CubeTexture) Size() int { return c.faces[0].width }

// CreateMipmap generates the mipmap chain for every face.
func (c *CubeTexture) CreateMipmap(levelCap int) bool {
	ok := true
	for _, f := range c.faces {
		if !f.CreateMipmap(levelCap) {
			ok = false
		}
	}
	return ok
}

// SelectFace resolves a direction vector (u,v,w) to the major-axis face
// it points into (ties broken X > Y > Z per §4.2) and that face's
// normalized [0,1]^2 UV coordinate, per the table in §6.
func SelectFace(u, v, w float32) (face Face, fu, fv float32) {
	au, av, aw := abs32(u), abs32(v), abs32(w)

	switch {
	case au >= av && au >= aw:
		if u > 0 {
			return FacePosX, (-w/au + 1) * 0.5, (-v/au + 1) * 0.5
		}
		return FaceNegX, (w/au + 1) * 0.5, (-v/au + 1) * 0.5
	case av >= au && av >= aw:
		if v > 0 {
			return FacePosY, (-u/av + 1) * 0.5, (-w/av + 1) * 0.5
		}
		return FaceNegY, (-u/av + 1) * 0.5, (w/av + 1) * 0.5
	default:
		if w > 0 {
			return FacePosZ, (u/aw + 1) * 0.5, (-v/aw + 1) * 0.5
		}
		return FaceNegZ, (-u/aw + 1) * 0.5, (-v/aw + 1) * 0.5
	}
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
