package constants

// Static route constants
const (
	PublicRoute = "/"
	// ID-proof uploads directory relative to the project root
	IDProofUploadDir = "public/uploads/id_proofs"
	// Public URL prefix for serving uploads
	UploadsRoute = "/uploads"
)
