package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/notaryweb/internal/config"
	"github.com/notaryweb/internal/db"
)

// adminctl 创建管理员账号或重置其密码
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	username := flag.String("username", cfg.AdminUsername, "admin username")
	password := flag.String("password", "", "new password (falls back to ADMIN_PASSWORD)")
	flag.Parse()

	if *password == "" {
		*password = cfg.AdminPassword
	}
	if *username == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "usage: adminctl -username <name> -password <password>")
		os.Exit(2)
	}

	// 初始化数据库
	gdb, err := db.Open(cfg.Database)
	if err != nil {
		log.Fatal("数据库初始化失败:", err)
	}
	defer db.Close(gdb)

	if err := db.SetPassword(gdb, *username, *password); err != nil {
		log.Fatal("设置密码失败:", err)
	}

	fmt.Printf("管理员 %s 的密码已更新\n", *username)
}
