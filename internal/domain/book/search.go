package book

import "strings"

// SearchParams 搜索条件，所有字段可选
type SearchParams struct {
	Titles  []string
	Authors []string
	ISBN    string
}

// Field 可参与搜索的图书字段
type Field string

const (
	FieldTitle  Field = "title"
	FieldAuthor Field = "author"
	FieldISBN   Field = "isbn"
)

// valueOf 读取图书对应字段的值
func (f Field) valueOf(b *Book) string {
	switch f {
	case FieldTitle:
		return b.Title
	case FieldAuthor:
		return b.Author
	case FieldISBN:
		return b.ISBN
	default:
		return ""
	}
}

// Predicate 单字段谓词:字段值属于Values之一
type Predicate struct {
	Field  Field
	Values []string
}

// Matches 内存中判断图书是否满足谓词
func (p Predicate) Matches(b *Book) bool {
	v := p.Field.valueOf(b)
	for _, want := range p.Values {
		if v == want {
			return true
		}
	}
	return false
}

// Specification 多个谓词的AND组合，空规约匹配全部
type Specification struct {
	Predicates []Predicate
}

// IsEmpty 是否没有任何过滤条件
func (s Specification) IsEmpty() bool {
	return len(s.Predicates) == 0
}

// IsSatisfiedBy 内存求值，软删除的图书永远不满足
func (s Specification) IsSatisfiedBy(b *Book) bool {
	if b == nil || b.IsDeleted {
		return false
	}
	for _, p := range s.Predicates {
		if !p.Matches(b) {
			return false
		}
	}
	return true
}

// PredicateProvider 根据字段值列表生成谓词
type PredicateProvider func(values []string) Predicate

// SpecificationBuilder 按字段注册的谓词提供者构建规约
type SpecificationBuilder struct {
	order     []Field
	providers map[Field]PredicateProvider
}

// NewSpecificationBuilder 创建带默认字段（title、author、isbn）的构建器
func NewSpecificationBuilder() *SpecificationBuilder {
	b := &SpecificationBuilder{providers: make(map[Field]PredicateProvider)}
	for _, f := range []Field{FieldTitle, FieldAuthor, FieldISBN} {
		b.Register(f, inProvider(f))
	}
	return b
}

// Register 注册或替换字段的谓词提供者
func (b *SpecificationBuilder) Register(f Field, p PredicateProvider) {
	if _, ok := b.providers[f]; !ok {
		b.order = append(b.order, f)
	}
	b.providers[f] = p
}

// Build 只为非空的搜索字段生成谓词
func (b *SpecificationBuilder) Build(params SearchParams) Specification {
	values := map[Field][]string{
		FieldTitle:  clean(params.Titles),
		FieldAuthor: clean(params.Authors),
		FieldISBN:   clean([]string{params.ISBN}),
	}

	var spec Specification
	for _, f := range b.order {
		v := values[f]
		if len(v) == 0 {
			continue
		}
		spec.Predicates = append(spec.Predicates, b.providers[f](v))
	}
	return spec
}

func inProvider(f Field) PredicateProvider {
	return func(values []string) Predicate {
		return Predicate{Field: f, Values: values}
	}
}

// clean 去掉空白值
func clean(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
