package service

type nopMetrics struct{}

func (nopMetrics) Signup(string)        {}
func (nopMetrics) Login(string)         {}
func (nopMetrics) GuestProvisioned()    {}
func (nopMetrics) GuardRejected(string) {}
