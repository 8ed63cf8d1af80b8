package enum

// ParticularType says which document a particular line may appear on
type ParticularType string

const (
	ParticularTypeReceipt ParticularType = "RECEIPT"
	ParticularTypeChallan ParticularType = "CHALLAN"
)

func (t ParticularType) IsValid() bool {
	return t == ParticularTypeReceipt || t == ParticularTypeChallan
}
