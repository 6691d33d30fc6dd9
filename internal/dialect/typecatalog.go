package dialect

import "strings"

// SemanticType is the canonical value domain a native column type maps to.
// Every dialect resolves each native type name to exactly one semantic type;
// names a dialect does not know resolve to Unknown, which disables typed
// binding and falls back to passing the raw string.
type SemanticType int

const (
	Unknown SemanticType = iota
	Integer64
	Integer32
	Integer16
	Integer8
	Decimal
	Float64
	Float32
	Text
	Boolean
	UUID
	Date
	DateTime
	DateTimeWithOffset
	Time
	Binary
	Json
)

var semanticNames = map[SemanticType]string{
	Unknown:            "Unknown",
	Integer64:          "Integer64",
	Integer32:          "Integer32",
	Integer16:          "Integer16",
	Integer8:           "Integer8",
	Decimal:            "Decimal",
	Float64:            "Float64",
	Float32:            "Float32",
	Text:               "Text",
	Boolean:            "Boolean",
	UUID:               "UUID",
	Date:               "Date",
	DateTime:           "DateTime",
	DateTimeWithOffset: "DateTimeWithOffset",
	Time:               "Time",
	Binary:             "Binary",
	Json:               "Json",
}

func (s SemanticType) String() string {
	if n, ok := semanticNames[s]; ok {
		return n
	}
	return "Unknown"
}

// IsTimestamp reports whether the type carries full date-time precision,
// i.e. whether a date-only filter against it needs the date-cast rewrite.
func (s SemanticType) IsTimestamp() bool {
	return s == DateTime || s == DateTimeWithOffset
}

// ResolveType maps a native type name reported by this engine's metadata to
// its semantic type. The name is lower-cased and any "(n)" length or
// precision suffix is stripped before lookup.
func (d *Dialect) ResolveType(nativeName string) SemanticType {
	name := strings.ToLower(strings.TrimSpace(nativeName))
	if i := strings.IndexByte(name, '('); i >= 0 {
		name = strings.TrimSpace(name[:i])
	}
	if st, ok := d.types[name]; ok {
		return st
	}
	if d.Engine == EngineSQLite {
		return sqliteAffinity(name)
	}
	return Unknown
}

// postgresTypes uses the data_type strings reported by
// information_schema.columns.
var postgresTypes = map[string]SemanticType{
	"bigint":                      Integer64,
	"integer":                     Integer32,
	"smallint":                    Integer16,
	"numeric":                     Decimal,
	"double precision":            Float64,
	"real":                        Float32,
	"text":                        Text,
	"character varying":           Text,
	"character":                   Text,
	"boolean":                     Boolean,
	"uuid":                        UUID,
	"date":                        Date,
	"timestamp without time zone": DateTime,
	"timestamp with time zone":    DateTimeWithOffset,
	"time without time zone":      Time,
	"time with time zone":         Time,
	"bytea":                       Binary,
	"json":                        Json,
	"jsonb":                       Json,
}

var mysqlTypes = map[string]SemanticType{
	"bigint":     Integer64,
	"int":        Integer32,
	"integer":    Integer32,
	"mediumint":  Integer32,
	"smallint":   Integer16,
	"year":       Integer16,
	"tinyint":    Integer8,
	"decimal":    Decimal,
	"numeric":    Decimal,
	"double":     Float64,
	"float":      Float32,
	"varchar":    Text,
	"char":       Text,
	"text":       Text,
	"tinytext":   Text,
	"mediumtext": Text,
	"longtext":   Text,
	"enum":       Text,
	"set":        Text,
	"bit":        Boolean,
	"date":       Date,
	"datetime":   DateTime,
	"timestamp":  DateTime,
	"time":       Time,
	"binary":     Binary,
	"varbinary":  Binary,
	"blob":       Binary,
	"tinyblob":   Binary,
	"mediumblob": Binary,
	"longblob":   Binary,
	"json":       Json,
}

var sqlserverTypes = map[string]SemanticType{
	"bigint":           Integer64,
	"int":              Integer32,
	"smallint":         Integer16,
	"tinyint":          Integer8,
	"decimal":          Decimal,
	"numeric":          Decimal,
	"money":            Decimal,
	"smallmoney":       Decimal,
	"float":            Float64,
	"real":             Float32,
	"varchar":          Text,
	"nvarchar":         Text,
	"char":             Text,
	"nchar":            Text,
	"text":             Text,
	"ntext":            Text,
	"bit":              Boolean,
	"uniqueidentifier": UUID,
	"date":             Date,
	"datetime":         DateTime,
	"datetime2":        DateTime,
	"smalldatetime":    DateTime,
	"datetimeoffset":   DateTimeWithOffset,
	"time":             Time,
	"binary":           Binary,
	"varbinary":        Binary,
	"image":            Binary,
}

// sqliteTypes covers the declared type names SQLite reports verbatim from the
// CREATE TABLE text; anything else falls through to the affinity rules.
var sqliteTypes = map[string]SemanticType{
	"integer":   Integer64,
	"int":       Integer64,
	"bigint":    Integer64,
	"smallint":  Integer16,
	"tinyint":   Integer8,
	"real":      Float64,
	"double":    Float64,
	"float":     Float64,
	"numeric":   Decimal,
	"decimal":   Decimal,
	"text":      Text,
	"varchar":   Text,
	"char":      Text,
	"clob":      Text,
	"boolean":   Boolean,
	"date":      Date,
	"datetime":  DateTime,
	"timestamp": DateTime,
	"time":      Time,
	"blob":      Binary,
}

// sqliteAffinity approximates SQLite's type affinity rules for declared
// types not in the table above (e.g. "unsigned big int").
func sqliteAffinity(name string) SemanticType {
	switch {
	case strings.Contains(name, "int"):
		return Integer64
	case strings.Contains(name, "char"), strings.Contains(name, "clob"),
		strings.Contains(name, "text"):
		return Text
	case strings.Contains(name, "blob"):
		return Binary
	case strings.Contains(name, "real"), strings.Contains(name, "floa"),
		strings.Contains(name, "doub"):
		return Float64
	default:
		return Unknown
	}
}
