package usecase

// Name pools for generated prospects. Uniqueness is not required; real
// leagues have two Marcus Johnsons too.
var prospectFirstNames = []string{
	"Aaron", "Andre", "Anthony", "Brandon", "Caleb", "Cameron", "Chris",
	"Damian", "Darius", "DeMarcus", "Devin", "Elijah", "Eric", "Gary",
	"Isaiah", "Jalen", "Jamal", "James", "Jaylen", "Jerami", "Jordan",
	"Josh", "Juan", "Kendall", "Kevin", "Malik", "Marcus", "Michael",
	"Miles", "Omari", "Quincy", "Rashad", "Reggie", "Terrence", "Trevor",
	"Tyrese", "Victor", "Xavier", "Zach", "Zion",
}

var prospectLastNames = []string{
	"Adams", "Allen", "Anderson", "Barnes", "Bell", "Brooks", "Brown",
	"Carter", "Coleman", "Collins", "Davis", "Edwards", "Evans", "Foster",
	"Gordon", "Green", "Harris", "Henderson", "Hill", "Howard", "Jackson",
	"James", "Johnson", "Jones", "Mitchell", "Moore", "Murray", "Porter",
	"Richardson", "Robinson", "Sanders", "Simmons", "Smith", "Thomas",
	"Thompson", "Turner", "Walker", "Washington", "Williams", "Wright",
}
