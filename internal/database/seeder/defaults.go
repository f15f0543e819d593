package seeder

// Defaults is the seeding order used by the seed command: catalogs first, then
// the demo roster that references them.
func Defaults() []Seeder {
	return []Seeder{
		SkillsSeeder{},
		LanguagesSeeder{},
		LocationsSeeder{},
		EmployeesSeeder{},
	}
}
