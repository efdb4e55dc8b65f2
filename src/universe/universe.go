package universe

//Universe is the interactive control surface of a simulation
//all commands return immediately, Session implements it
type Universe interface {
	Status() Status
	Options() Options
	InverseCell(x int, y int)
	Randomize()
	Run()
	Stop()
	Step()
	Clear()
	Close()
}

var _ Universe = (*Session)(nil)
