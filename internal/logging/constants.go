package logging

// Field names shared by all log statements so entries can be filtered consistently.
const (
	FieldFile        = "file_path"
	FieldComponent   = "component"
	FieldBatchID     = "batch_id"
	FieldKey         = "key"
	FieldCategory    = "category"
	FieldDocument    = "document"
	FieldDescription = "description"
	FieldColumn      = "column"
	FieldRow         = "row"
	FieldReason      = "reason"
	FieldOperation   = "operation"
	FieldError       = "error"
	FieldCount       = "count"
	FieldDelimiter   = "delimiter"
	FieldFormat      = "format"
	FieldInputFile   = "input_file"
	FieldOutputFile  = "output_file"
)
