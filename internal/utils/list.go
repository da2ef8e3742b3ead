package utils

func IsStringInSlice(s string, slice []string) bool {
	for _, v := range slice {
		if v == s {
			return true
		}
	}
	return false
}

// AppendUnique appends s unless it is already present
func AppendUnique(slice []string, s string) []string {
	if IsStringInSlice(s, slice) {
		return slice
	}
	return append(slice, s)
}
