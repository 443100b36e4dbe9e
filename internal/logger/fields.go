package logger

// Field names shared by every log call so entries can be filtered consistently.
const (
	FieldRequestID   = "requestId"
	FieldMethod      = "method"
	FieldURL         = "url"
	FieldStatus      = "status"
	FieldDuration    = "duration"
	FieldOp          = "op"
	FieldDocumentID  = "documentId"
	FieldFolderID    = "folderId"
	FieldTitle       = "title"
	FieldItemType    = "itemType"
	FieldMode        = "mode"
	FieldQuery       = "query"
	FieldCount       = "count"
	FieldToken       = "token"
	FieldSize        = "size"
	FieldContentType = "contentType"
	FieldBucket      = "bucket"
	FieldKey         = "key"
)
