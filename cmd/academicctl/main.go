// academicctl: operasi akademik dari terminal (migrate, kenaikan kelas, hitung nilai akhir).
package main

func main() {
	execute()
}
