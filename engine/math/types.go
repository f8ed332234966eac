package math

// Vec2 represents a 2D vector
type Vec2 struct {
	X, Y float32
}

// Vec3 represents a 3D vector
type Vec3 struct {
	X, Y, Z float32
}

// Vec4 represents a 4D vector
type Vec4 struct {
	X, Y, Z, W float32
}

// Quaternion is used to represent rotational orientation.
type Quaternion Vec4

// Mat4 is a 4x4 column-major matrix, typically used to represent object
// transformations. Element (row r, column c) lives at Data[c*4+r].
type Mat4 struct {
	Data [16]float32
}

// Extent3D is the size of an image in texels.
type Extent3D struct {
	Width  uint32
	Height uint32
	Depth  uint32
}

// Vertex3D represents a single vertex in 3D space.
type Vertex3D struct {
	Position Vec3
	Normal   Vec3
	Texcoord Vec2
	Colour   Vec4
	Tangent  Vec3
}

// Vertex2D represents a single vertex in 2D space.
type Vertex2D struct {
	Position Vec2
	Texcoord Vec2
}
