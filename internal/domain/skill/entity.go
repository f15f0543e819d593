package skill

type Skill struct {
	ID       int64
	Name     string
	Category string
}
