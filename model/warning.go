package model

// Kinds of recoverable anomalies. They are attached to log records as the
// "kind" attribute; none of them fails a conversion.
const (
	KindUnsupportedProperty       = "UnsupportedProperty"
	KindCyclicStyleChain          = "CyclicStyleChain"
	KindUnknownNumberingReference = "UnknownNumberingReference"
	KindMissingRelationshipTarget = "MissingRelationshipTarget"
)
